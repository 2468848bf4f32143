package entity

// Role is the single role a user holds. Customers are the default;
// managers promote users into the other two roles via the group endpoints.
type Role string

const (
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
	RoleCustomer     Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleDeliveryCrew, RoleCustomer:
		return true
	}
	return false
}
