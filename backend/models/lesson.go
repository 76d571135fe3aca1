package models

import (
	"time"

	"gorm.io/gorm"
)

type Lesson struct {
	gorm.Model
	SubjectID       uint   `json:"subject_id"`
	Title           string `gorm:"not null" json:"title"`
	TitleAr         string `json:"title_ar"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url"`
	DifficultyLevel int    `gorm:"default:1" json:"difficulty_level"` // 1-5
	SequenceOrder   int    `json:"sequence_order"`
	PointsReward    int    `gorm:"default:10" json:"points_reward"`
	IsPublished     bool   `gorm:"default:false" json:"is_published"`
	AuthorID        uint   `json:"author_id"`
}

// LessonProgress is the upsert record keyed by (user_id, lesson_id).
type LessonProgress struct {
	gorm.Model
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson" json:"user_id"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson" json:"lesson_id"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       int        `json:"score"`
	TimeSpent   int        `json:"time_spent"` // seconds
}
