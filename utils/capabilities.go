package utils

// Capability names one mutation a publication member may perform. Every
// editorial mutation checks exactly one capability instead of re-deriving
// role rules inline.
type Capability string

const (
	CapReview       Capability = "review"
	CapChangeStatus Capability = "change_status"
	CapAssignReader Capability = "assign_reader"
	CapDecide       Capability = "decide"
	CapManageForms  Capability = "manage_forms"
)

// Publication member roles.
const (
	MemberRoleReader = "reader"
	MemberRoleEditor = "editor"
	MemberRoleAdmin  = "admin"
)

var roleCapabilities = map[string][]Capability{
	MemberRoleReader: {CapReview},
	MemberRoleEditor: {CapReview, CapChangeStatus, CapAssignReader, CapDecide, CapManageForms},
	MemberRoleAdmin:  {CapReview, CapChangeStatus, CapAssignReader, CapDecide, CapManageForms},
}

// RoleCan reports whether a publication role grants a capability.
func RoleCan(role string, capability Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == capability {
			return true
		}
	}
	return false
}
