package models

import "gorm.io/gorm"

// WhiteboardSave holds one drawing per user per lesson. Data is the
// serialized stroke list; the backend never inspects it.
type WhiteboardSave struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex:idx_user_lesson_board" json:"user_id"`
	LessonID uint   `gorm:"uniqueIndex:idx_user_lesson_board" json:"lesson_id"`
	Data     string `json:"data"`
}
