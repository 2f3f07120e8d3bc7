package entitlement

import (
	"fmt"

	"sheet2bill/internal/domain/plans"
)

// Evaluate is the pure decision policy: compare the current count to the
// tier's limit and produce an allow/deny with a user-facing message.
//
// Deny messages differ by audience. The owner hitting their own cap sees
// the concrete number and an upgrade hint. An inquiry denial is shown to
// an unauthenticated visitor, so it must not leak plan or billing details.
func Evaluate(tier string, action Action, count int64, limit plans.Limit) Decision {
	if limit.Unlimited || count < int64(limit.Max) {
		return Decision{Allowed: true}
	}

	if action.Intent == IntentReceive {
		return Decision{
			Allowed: false,
			Message: "This freelancer is not accepting new requests right now. Please try again later.",
		}
	}

	return Decision{
		Allowed: false,
		Message: fmt.Sprintf(
			"You have reached the limit of %d %s on the %s plan. Upgrade to Pro to add more.",
			limit.Max, resourceNoun(action.Resource), tier,
		),
	}
}

func resourceNoun(res plans.Resource) string {
	switch res {
	case plans.ResourceClients:
		return "clients"
	case plans.ResourceBriefs:
		return "briefs this month"
	case plans.ResourceItems:
		return "library items"
	case plans.ResourceInquiries:
		return "inquiries this month"
	default:
		return string(res)
	}
}
