package dto

import (
	"time"

	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	"github.com/scoopworks/scoopworks/internal/types"
)

// ActivityResponse is the API representation of an activity log entry
type ActivityResponse struct {
	ID         string               `json:"id"`
	Actor      string               `json:"actor"`
	Action     types.ActivityAction `json:"action"`
	EntityType string               `json:"entity_type"`
	EntityIDs  []string             `json:"entity_ids"`
	CreatedAt  time.Time            `json:"created_at"`
}

// NewActivityResponse converts an activity log entry to an API response
func NewActivityResponse(entry *activitylog.Entry) *ActivityResponse {
	return &ActivityResponse{
		ID:         entry.ID,
		Actor:      entry.Actor,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityIDs:  entry.EntityIDs,
		CreatedAt:  entry.CreatedAt,
	}
}

// ListActivityResponse represents a paginated list of activity entries
type ListActivityResponse = types.ListResponse[*ActivityResponse]
