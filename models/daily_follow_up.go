package models

import "time"

// DailyFollowUp is one attendance/performance row per student per day.
// Date is kept as YYYY-MM-DD; the (student, date) pair is unique so the
// roster backfill can upsert with ON CONFLICT DO NOTHING.
type DailyFollowUp struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"-" gorm:"not null;uniqueIndex:uniq_followup_student_date"`
	Student   Student   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Date      string    `json:"date" gorm:"size:10;not null;uniqueIndex:uniq_followup_student_date"`
	IsAbsent  bool      `json:"is_absent" gorm:"not null;default:false"`
	Degree    *float64  `json:"degree" gorm:"type:numeric(6,2)"`
	Notes     *string   `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
