package models

import "time"

type Student struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"size:200;not null"`
	GradeID         uint      `json:"-" gorm:"index;not null"`
	Grade           Grade     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ContactPhone    string    `json:"contact_phone" gorm:"size:11;not null"`
	AdditionalPhone *string   `json:"additional_phone" gorm:"size:11"`
	InitialLevel    *string   `json:"initial_level" gorm:"type:text"`
	Notes           *string   `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	FollowUps []DailyFollowUp  `json:"-" gorm:"foreignKey:StudentID"`
	Payments  []MonthlyPayment `json:"-" gorm:"foreignKey:StudentID"`
	Quizzes   []Quiz           `json:"-" gorm:"foreignKey:StudentID"`
}
