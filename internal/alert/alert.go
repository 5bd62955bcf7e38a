package alert

import (
	"bytes"
	"fmt"
	"text/template"

	"stocktrack-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const subject = "[Daily Report] Low stock alert"

var bodyTemplate = template.Must(template.New("summary_alert").Parse(
	`The following inventories are at or below their alert threshold:

{{range .Items}}  - {{.ItemNumber}} {{.ProductName}} @ {{.StoreName}}: {{.Quantity}} on hand (threshold {{.Threshold}})
{{end}}
Please restock where needed.
`))

type LowStockItem struct {
	ItemNumber  string
	ProductName string
	StoreName   string
	Quantity    int
	Threshold   int
}

// Scan returns every inventory at or below its threshold, joined with its
// product and store. Reads a committed snapshot; holds no state.
func Scan(db *gorm.DB) ([]LowStockItem, error) {
	var inventories []models.Inventory
	if err := db.Preload("Product").Preload("Store").
		Where("quantity <= threshold").
		Order("store_id asc, product_id asc").
		Find(&inventories).Error; err != nil {
		return nil, fmt.Errorf("low-stock scan failed: %w", err)
	}

	items := make([]LowStockItem, 0, len(inventories))
	for _, inv := range inventories {
		items = append(items, LowStockItem{
			ItemNumber:  inv.Product.ItemNumber,
			ProductName: inv.Product.Name,
			StoreName:   inv.Store.Name,
			Quantity:    inv.Quantity,
			Threshold:   inv.Threshold,
		})
	}
	return items, nil
}

// AdminRecipients collects the distinct e-mail addresses of admin users.
func AdminRecipients(db *gorm.DB) ([]string, error) {
	var emails []string
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Distinct().
		Pluck("email", &emails).Error; err != nil {
		return nil, fmt.Errorf("could not collect admin recipients: %w", err)
	}
	return emails, nil
}

// Run performs one alert pass: scan, and if anything is under threshold send
// one batched notification to all admins. Fire-and-forget; failures are
// logged and never propagate past a run.
func Run(db *gorm.DB, sender Sender, logger *zap.Logger) error {
	items, err := Scan(db)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		logger.Info("no low stock items found")
		return nil
	}

	recipients, err := AdminRecipients(db)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Warn("low stock items found but no admin recipients exist, skipping notification",
			zap.Int("items", len(items)))
		return nil
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, struct{ Items []LowStockItem }{items}); err != nil {
		return fmt.Errorf("could not render alert body: %w", err)
	}

	if err := sender.Send(recipients, subject, body.String()); err != nil {
		return fmt.Errorf("could not send alert mail: %w", err)
	}

	logger.Info("stock alert summary sent",
		zap.Int("items", len(items)),
		zap.Strings("recipients", recipients))
	return nil
}
