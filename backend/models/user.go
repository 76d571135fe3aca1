package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, teacher, admin
	FullName     string `json:"full_name"`
	Grade        string `json:"grade"`
}

// UserProfile carries the gamification state. Points is the single
// counter the game engine's award call increments.
type UserProfile struct {
	gorm.Model
	UserID     uint      `gorm:"uniqueIndex" json:"user_id"`
	Points     int       `gorm:"default:0" json:"points"`
	StreakDays int       `gorm:"default:0" json:"streak_days"`
	LastActive time.Time `json:"last_active"`
	AvatarURL  string    `json:"avatar_url"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uint      `json:"user_id"`
	LoginTime time.Time `json:"login_time"`
}

type UserAchievement struct {
	gorm.Model
	UserID          uint      `json:"user_id"`
	AchievementType string    `json:"achievement_type"` // "first_lesson", "streak_7", "quiz_master"
	AchievementData string    `json:"achievement_data"` // JSON blob with context (lesson id, title, ...)
	EarnedAt        time.Time `json:"earned_at"`
}
