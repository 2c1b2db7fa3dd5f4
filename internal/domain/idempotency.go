package domain

import "time"

// Idempotency records the outcome of a create request made with an
// Idempotency-Key header, keyed by (account_id, scope, key). Scope names the
// route (e.g. "POST /questions"). A retry with the same key returns the
// resource created the first time instead of inserting a duplicate.
type Idempotency struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	AccountID  AccountID `gorm:"not null;uniqueIndex:ux_account_scope_key,priority:1"`
	Scope      string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_account_scope_key,priority:2"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_account_scope_key,priority:3"`
	ResourceID int64     `gorm:"not null"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
