package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		expected bool
	}{
		{"admin can act as manager", Admin, Manager, true},
		{"manager can act as manager", Manager, Manager, true},
		{"employee cannot act as manager", Employee, Manager, false},
		{"employee can act as employee", Employee, Employee, true},
		{"unknown role falls back to employee", Role("INTERN"), Manager, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.HasPermission(tt.required))
		})
	}
}

func TestIsManagerOrAdmin(t *testing.T) {
	assert.True(t, IsManagerOrAdmin(Admin, false))
	assert.True(t, IsManagerOrAdmin(Manager, false))
	assert.False(t, IsManagerOrAdmin(Employee, false))
	assert.True(t, IsManagerOrAdmin(Employee, true), "superuser bypasses the role check")
}

func TestIsValid(t *testing.T) {
	assert.True(t, Employee.IsValid())
	assert.True(t, Manager.IsValid())
	assert.True(t, Admin.IsValid())
	assert.False(t, Role("SUPERVISOR").IsValid())
	assert.False(t, Role("").IsValid())
}
