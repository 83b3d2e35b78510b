package activitylog

import (
	"context"
	"time"

	"github.com/scoopworks/scoopworks/internal/types"
)

// Entry is one append-only audit record of a successful state change.
// Entries are written best-effort after the state change commits; a
// failed append is logged and swallowed, never rolled into the caller's
// result.
type Entry struct {
	ID string `db:"id" json:"id"`

	// Actor is the user id (or "system" for scheduled jobs) that performed
	// the action
	Actor string `db:"actor" json:"actor"`

	// Action identifies the state change
	Action types.ActivityAction `db:"action" json:"action"`

	// EntityType and EntityIDs identify the affected rows
	EntityType string   `db:"entity_type" json:"entity_type"`
	EntityIDs  []string `db:"entity_ids" json:"entity_ids"`

	OrganizationID string    `db:"organization_id" json:"organization_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// NewEntry builds an audit entry stamped with the actor and organization
// from context
func NewEntry(ctx context.Context, action types.ActivityAction, entityType string, entityIDs []string) *Entry {
	return &Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVITY_LOG),
		Actor:          types.GetUserID(ctx),
		Action:         action,
		EntityType:     entityType,
		EntityIDs:      entityIDs,
		OrganizationID: types.GetOrganizationID(ctx),
		CreatedAt:      time.Now().UTC(),
	}
}
