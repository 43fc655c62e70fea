// Package actions decides which table actions a staff member may take on a
// table in its current state, and why not when they may not.
package actions

// Capability is one grantable permission of a staff role.
type Capability string

const (
	CapOrder  Capability = "order"
	CapBook   Capability = "book"
	CapBill   Capability = "bill"
	CapClear  Capability = "clear"
	CapManage Capability = "manage" // layout edits and offline transitions
)

// roleCapabilities is the single role to capability-set mapping. Every
// permission check in the service goes through this table; no call site
// keeps its own role list.
var roleCapabilities = map[string][]Capability{
	"admin":   {CapOrder, CapBook, CapBill, CapClear, CapManage},
	"manager": {CapOrder, CapBook, CapBill, CapClear, CapManage},
	"waiter":  {CapOrder, CapBook, CapBill},
	"cashier": {CapBill},
	"cleaner": {CapClear},
}

// CapabilitiesFor returns the capability set of a role. Unknown roles get
// an empty set.
func CapabilitiesFor(role string) []Capability {
	return roleCapabilities[role]
}

// Allowed reports whether the role holds the capability.
func Allowed(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}
