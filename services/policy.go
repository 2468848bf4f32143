package services

import (
	"littlelemon/entity"
	"littlelemon/pkg/apperr"
)

// Action is an operation gated by the role policy.
type Action int

const (
	ActionMenuView Action = iota
	ActionMenuManage
	ActionCartUse
	ActionOrderCreate
	ActionOrderList
	ActionOrderView
	ActionOrderUpdate       // assign crew and/or set status
	ActionOrderUpdateStatus // set status only
	ActionOrderDelete
	ActionGroupManage
)

type verdict int

const (
	deny verdict = iota
	allow
	allowIfOwned
)

// policy is the single source of truth for who may do what. Ownership
// ("owned") means the actor owns the resource: for a customer their own
// order or cart, for delivery crew an order assigned to them.
var policy = map[Action]map[entity.Role]verdict{
	ActionMenuView: {
		entity.RoleManager:      allow,
		entity.RoleDeliveryCrew: allow,
		entity.RoleCustomer:     allow,
	},
	ActionMenuManage: {
		entity.RoleManager: allow,
	},
	ActionCartUse: {
		entity.RoleCustomer: allow,
	},
	ActionOrderCreate: {
		entity.RoleCustomer: allow,
	},
	ActionOrderList: {
		entity.RoleManager:      allow,
		entity.RoleDeliveryCrew: allow,
		entity.RoleCustomer:     allow,
	},
	// Single-order retrieval serves customers only; managers and crew get
	// their data through the list endpoint.
	ActionOrderView: {
		entity.RoleCustomer: allowIfOwned,
	},
	ActionOrderUpdate: {
		entity.RoleManager: allow,
	},
	ActionOrderUpdateStatus: {
		entity.RoleManager:      allow,
		entity.RoleDeliveryCrew: allowIfOwned,
	},
	ActionOrderDelete: {
		entity.RoleManager: allow,
	},
	ActionGroupManage: {
		entity.RoleManager: allow,
	},
}

// Decide returns nil when role may perform action, a forbidden error
// otherwise. An ownership mismatch is a forbidden error, never not-found,
// so denied callers cannot probe for existence.
func Decide(role entity.Role, action Action, owned bool) error {
	switch policy[action][role] {
	case allow:
		return nil
	case allowIfOwned:
		if owned {
			return nil
		}
		return apperr.Forbiddenf("not the owner")
	default:
		return apperr.Forbiddenf("role %s may not perform this operation", role)
	}
}
