package constants

import "modconsole.com/internal/model"

// Moderation event types published when the console forwards a write.
const (
	EventRecordBanned   = "record.banned"
	EventRecordUnbanned = "record.unbanned"
	EventRecordDeleted  = "record.deleted"
	EventRecordUpdated  = "record.updated"

	EventOperatorSignedIn  = "operator.signed_in"
	EventOperatorLoggedOut = "operator.logged_out"
)

// ModerationEvents lists every event the audit trail listens to.
var ModerationEvents = []string{
	EventRecordBanned,
	EventRecordUnbanned,
	EventRecordDeleted,
	EventRecordUpdated,
	EventOperatorSignedIn,
	EventOperatorLoggedOut,
}

// EventForAction maps an audit action name to its event type.
func EventForAction(action string) string {
	switch action {
	case model.ActionBan:
		return EventRecordBanned
	case model.ActionUnban:
		return EventRecordUnbanned
	case model.ActionDelete:
		return EventRecordDeleted
	case model.ActionUpdate:
		return EventRecordUpdated
	case model.ActionSignIn:
		return EventOperatorSignedIn
	case model.ActionLogout:
		return EventOperatorLoggedOut
	default:
		return ""
	}
}
