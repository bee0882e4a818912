package ticket

import "github.com/itops-inc/itdesk/internal/shared/authorization"

// Relation is how an actor relates to a ticket.
type Relation string

const (
	RelationAdmin    Relation = "admin"
	RelationOwner    Relation = "owner"
	RelationAssignee Relation = "assignee"
	RelationDenied   Relation = "denied"
)

type AccessDecision struct {
	Allowed  bool
	Relation Relation
}

// CanAccessTicket is the single read/update predicate. Admin wins over
// owner, owner wins over assignee.
func CanAccessTicket(t *Ticket, actor authorization.Actor) AccessDecision {
	switch {
	case actor.IsAdmin():
		return AccessDecision{Allowed: true, Relation: RelationAdmin}
	case t.ReportedByID() == actor.ID:
		return AccessDecision{Allowed: true, Relation: RelationOwner}
	case t.IsAssignedTo(actor.ID):
		return AccessDecision{Allowed: true, Relation: RelationAssignee}
	default:
		return AccessDecision{Allowed: false, Relation: RelationDenied}
	}
}
