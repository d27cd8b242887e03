package models

import "time"

type Terminal struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"not null;uniqueIndex:idx_terminals_branch_code" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Code   string `gorm:"size:50;not null;uniqueIndex:idx_terminals_branch_code" json:"code"`
	Label  string `gorm:"size:100" json:"label"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
