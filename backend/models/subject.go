package models

import "gorm.io/gorm"

type Subject struct {
	gorm.Model
	Name        string     `gorm:"not null" json:"name"`
	NameAr      string     `json:"name_ar"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	Lessons     []Lesson   `json:"lessons,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}
