package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"studyforge/backend/cache"
	"studyforge/backend/models"

	"gorm.io/gorm"
)

const questionCacheTTL = 5 * time.Minute

// GormQuestionSource loads question pages from the database, with an
// optional redis cache in front. Cache is nil-safe: with no redis the
// source just always hits the database.
type GormQuestionSource struct {
	DB     *gorm.DB
	Cache  *cache.Client
	Logger *log.Logger
}

func (s *GormQuestionSource) Load(ctx context.Context, subjectID uint, f Filter) ([]Question, error) {
	if f.Limit <= 0 || f.Limit > DefaultQuestionLimit {
		f.Limit = DefaultQuestionLimit
	}

	key := fmt.Sprintf("questions:subject:%d:d%d:l%d:%s", subjectID, f.Difficulty, f.Limit, f.Search)
	if cached, err := s.Cache.Get(ctx, key); err == nil {
		var questions []Question
		if json.Unmarshal([]byte(cached), &questions) == nil {
			return questions, nil
		}
	}

	query := s.DB.WithContext(ctx).Where("subject_id = ?", subjectID)
	if f.Difficulty > 0 {
		query = query.Where("difficulty_level = ?", f.Difficulty)
	}
	if f.Search != "" {
		query = query.Where("text LIKE ?", "%"+f.Search+"%")
	}

	var rows []models.Question
	if err := query.Order("difficulty_level asc").Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(rows))
	for i := range rows {
		options, err := rows[i].OptionList()
		if err != nil {
			if s.Logger != nil {
				s.Logger.Printf("skipping question %d: bad options payload: %v", rows[i].ID, err)
			}
			continue
		}
		questions = append(questions, Question{
			ID:              rows[i].ID,
			Text:            rows[i].Text,
			Type:            rows[i].Type,
			Options:         options,
			CorrectAnswer:   rows[i].CorrectAnswer,
			Explanation:     rows[i].Explanation,
			DifficultyLevel: rows[i].DifficultyLevel,
			Points:          rows[i].Points,
		})
	}

	if len(questions) > 0 {
		if data, err := json.Marshal(questions); err == nil {
			if err := s.Cache.Set(ctx, key, data, questionCacheTTL); err != nil && s.Logger != nil {
				s.Logger.Printf("question cache write failed: %v", err)
			}
		}
	}

	return questions, nil
}

// GormPointsSink applies the atomic point increment. The increment is
// a single UPDATE so concurrent awards cannot lose points.
type GormPointsSink struct {
	DB *gorm.DB
}

func (s *GormPointsSink) AddPoints(ctx context.Context, userID uint, points int) error {
	if points < 0 {
		return fmt.Errorf("negative point award: %d", points)
	}

	res := s.DB.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		profile := models.UserProfile{
			UserID:     userID,
			Points:     points,
			LastActive: time.Now(),
		}
		return s.DB.WithContext(ctx).Create(&profile).Error
	}

	return nil
}
