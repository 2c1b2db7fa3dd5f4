package domain

import "time"

// Session is the authenticated principal attached to a request. It is derived
// from a verified session token and is never persisted.
type Session struct {
	AccountID AccountID `json:"account_id"`
	NotBefore time.Time `json:"nbf"`
	Expiry    time.Time `json:"exp"`
}

// Pagination selects a window of a list result: skip Offset rows, then return
// at most *Limit rows. A nil Limit means no upper bound.
type Pagination struct {
	Limit  *int `json:"limit,omitempty"`
	Offset int  `json:"offset"`
}
