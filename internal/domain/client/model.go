package client

import (
	"github.com/scoopworks/scoopworks/internal/types"
)

// Client is a billed customer account. DogCount labels invoice line items;
// it never re-derives a committed price.
type Client struct {
	ID string `db:"id" json:"id"`

	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`

	// ZipCode is the service location zip, informational for pricing today
	ZipCode string `db:"zip_code" json:"zip_code"`

	// DogCount is the number of dogs currently on service
	DogCount int `db:"dog_count" json:"dog_count"`

	// ClientStatus gates billing: only ACTIVE clients are invoiced
	ClientStatus types.ClientStatus `db:"client_status" json:"client_status"`

	types.BaseModel
}

// IsActive reports whether the client participates in invoice generation
func (c *Client) IsActive() bool {
	return c.ClientStatus == types.ClientStatusActive
}
