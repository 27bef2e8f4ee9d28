package domain

import "strings"

// Department is the fixed set of departments that own a working-day calendar.
type Department string

const (
	DepartmentSalesman     Department = "Salesman"
	DepartmentMechanic     Department = "Mechanic"
	DepartmentHousekeeping Department = "Housekeeping"
	DepartmentManagement   Department = "Management"
)

var Departments = []Department{
	DepartmentSalesman,
	DepartmentMechanic,
	DepartmentHousekeeping,
	DepartmentManagement,
}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDepartment is case-insensitive: "mechanic" -> Mechanic.
func ParseDepartment(v string) (Department, bool) {
	v = strings.TrimSpace(v)
	for _, known := range Departments {
		if strings.EqualFold(string(known), v) {
			return known, true
		}
	}
	return "", false
}

type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "Active"
	StatusInactive EmployeeStatus = "Inactive"
)

func (s EmployeeStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}
