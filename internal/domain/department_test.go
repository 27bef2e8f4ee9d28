package domain_test

import (
	"testing"

	"go-payroll/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseDepartment(t *testing.T) {
	d, ok := domain.ParseDepartment(" mechanic ")
	assert.True(t, ok)
	assert.Equal(t, domain.DepartmentMechanic, d)

	_, ok = domain.ParseDepartment("Finance")
	assert.False(t, ok)

	assert.True(t, domain.DepartmentHousekeeping.Valid())
	assert.False(t, domain.Department("housekeeping").Valid())
	assert.True(t, domain.StatusInactive.Valid())
	assert.False(t, domain.EmployeeStatus("Suspended").Valid())
}
