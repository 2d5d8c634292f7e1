package models

import "time"

// TableBinding pins a user to the table they scanned at entry. It survives
// reloads and is cleared only by explicit action.
type TableBinding struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`
	TableNumber int       `gorm:"not null" json:"table_number"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// ClosingRequest marks a tab the customer asked to close, pending staff
// confirmation. The backend has no status value for this interim state.
type ClosingRequest struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	TabID     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"tab_id"`
	UserID    string    `gorm:"type:varchar(64);not null" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
