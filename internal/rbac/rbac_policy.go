package rbac

import "go-payroll/internal/domain"

type Policy struct {
	Role     string
	Resource string
	Action   string
}

type RoleInheritance struct {
	Role   string
	Parent string
}

// DefaultPolicies: viewers read, supervisors also mark attendance and run
// calculations, admins may do anything.
var DefaultPolicies = []Policy{
	{domain.RoleViewer, "employee", "read"},
	{domain.RoleViewer, "attendance", "read"},
	{domain.RoleViewer, "working_days", "read"},
	{domain.RoleViewer, "salary", "read"},
	{domain.RoleViewer, "dashboard", "read"},

	{domain.RoleSupervisor, "attendance", "create"},
	{domain.RoleSupervisor, "salary", "calculate"},
	{domain.RoleSupervisor, "salary", "save"},

	{domain.RoleAdmin, "*", "*"},
}

var DefaultInheritance = []RoleInheritance{
	{Role: domain.RoleSupervisor, Parent: domain.RoleViewer},
	{Role: domain.RoleAdmin, Parent: domain.RoleSupervisor},
}
