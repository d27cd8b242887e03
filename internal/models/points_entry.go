package models

import "time"

// PointsEntry is one signed delta in the points ledger. Entries are only
// ever appended; a customer's balance is SUM(delta) over their entries.
type PointsEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID string `gorm:"type:uuid;index;not null" json:"customer_id"`
	Delta      int    `gorm:"not null" json:"delta"`
	Reason     string `gorm:"size:200;not null" json:"reason"`
	AdminID    uint   `gorm:"not null" json:"admin_id"`

	CreatedAt time.Time `json:"created_at"`
}
