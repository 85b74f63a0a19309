package models

import "time"

// Quiz holds per-month quiz notes for a student. No unique constraint on
// (student, month): the legacy schema allows duplicates, so the backfill
// stays find-then-create.
type Quiz struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	StudentID uint         `json:"-" gorm:"index;not null"`
	Student   Student      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MonthID   uint         `json:"-" gorm:"index;not null"`
	Month     PaymentMonth `json:"-" gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE"`
	Notes     *string      `json:"notes" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
