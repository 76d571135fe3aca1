package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

type Question struct {
	gorm.Model
	SubjectID       uint   `json:"subject_id"`
	Text            string `gorm:"not null" json:"text"`
	Type            string `gorm:"default:multiple_choice" json:"type"`
	Options         string `json:"options"` // JSON array of options, empty for short_answer
	CorrectAnswer   string `gorm:"not null" json:"correct_answer"`
	Explanation     string `json:"explanation"`
	DifficultyLevel int    `gorm:"default:1" json:"difficulty_level"` // 1-5
	Points          int    `gorm:"default:10" json:"points"`
	Source          string `json:"source"`
}

// OptionList decodes the JSON-encoded Options column. A missing or
// empty column yields a nil slice, not an error.
func (q *Question) OptionList() ([]string, error) {
	if q.Options == "" {
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return nil, err
	}
	return options, nil
}
