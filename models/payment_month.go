package models

// PaymentMonth is a named billing period. Order drives every listing
// (always ascending) and must be positive.
type PaymentMonth struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:50;not null"`
	Order int    `json:"order" gorm:"column:order;not null"`
}
