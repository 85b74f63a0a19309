package models

// Grade is a classroom/level label. Students hang off it and are removed
// with it (FK cascade).
type Grade struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Level       string  `json:"level" gorm:"size:100;not null"`
	Description *string `json:"description" gorm:"type:text"`

	Students []Student `json:"-" gorm:"foreignKey:GradeID"`
}
