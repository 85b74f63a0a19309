package models

import "time"

// MonthlyPayment is one paid/unpaid flag per (student, month); the pair is
// unique so the matrix backfill can upsert with ON CONFLICT DO NOTHING.
type MonthlyPayment struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	StudentID uint         `json:"student" gorm:"not null;uniqueIndex:uniq_payment_student_month"`
	Student   Student      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MonthID   uint         `json:"month" gorm:"not null;uniqueIndex:uniq_payment_student_month"`
	Month     PaymentMonth `json:"-" gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE"`
	IsPaid    bool         `json:"is_paid" gorm:"not null;default:false"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
