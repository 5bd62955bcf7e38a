package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleLevelTotalOrder(t *testing.T) {
	require.Less(t, RoleStaff.Level(), RoleManager.Level())
	require.Less(t, RoleManager.Level(), RoleAdmin.Level())
}

func TestRoleUnknownRanksBelowStaff(t *testing.T) {
	require.Less(t, Role("superuser").Level(), RoleStaff.Level())
	require.Less(t, Role("").Level(), RoleStaff.Level())
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleStaff.Valid())
	require.True(t, RoleManager.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("root").Valid())
}

func TestInventoryLowStock(t *testing.T) {
	require.True(t, Inventory{Quantity: 3, Threshold: 10}.LowStock())
	require.True(t, Inventory{Quantity: 10, Threshold: 10}.LowStock())
	require.False(t, Inventory{Quantity: 15, Threshold: 10}.LowStock())
}
