package entitlement

import (
	"errors"

	"sheet2bill/internal/domain/plans"
)

// Intent distinguishes a user creating their own resource from a
// third party pushing a resource onto them (inbound inquiries).
type Intent string

const (
	IntentCreate  Intent = "create"
	IntentReceive Intent = "receive"
)

// Action is one quota-bounded operation checked by the gate.
type Action struct {
	Resource plans.Resource
	Intent   Intent
}

var (
	CreateClient   = Action{Resource: plans.ResourceClients, Intent: IntentCreate}
	CreateBrief    = Action{Resource: plans.ResourceBriefs, Intent: IntentCreate}
	CreateItem     = Action{Resource: plans.ResourceItems, Intent: IntentCreate}
	ReceiveInquiry = Action{Resource: plans.ResourceInquiries, Intent: IntentReceive}
)

// Decision is the single result contract of the gate: no call path
// throws on denial, the HTTP layer maps Allowed=false to a 402.
type Decision struct {
	Allowed bool
	Message string
}

// ErrAccountNotFound means the account needed for tier resolution does
// not exist. The gate fails closed: it never falls back to a default tier.
var ErrAccountNotFound = errors.New("entitlement: account not found")
