package models

// Tag is a label shared across questions through the question_tags join
// table.
type Tag struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Label string `gorm:"unique;not null;size:100" json:"label"`
}
