package models

import "time"

// WhitelistEntry is a named, user-managed set of authorized MAC
// addresses. ID and CreatedAt are assigned by the store; callers never
// construct them.
type WhitelistEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	MACs      []string  `json:"macs"`
	CreatedAt time.Time `json:"created_at"`
}
