package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix, e.g. inv_01JGXY8Q2M3N4P5Q6R7S8T9V0W
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_PRICING_RULE      = "rule"
	UUID_PREFIX_CLIENT            = "client"
	UUID_PREFIX_SUBSCRIPTION      = "subs"
	UUID_PREFIX_CROSS_SELL        = "cs"
	UUID_PREFIX_INVOICE           = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM = "inv_line"
	UUID_PREFIX_ACTIVITY_LOG      = "act"
)
