package controllers_test

import (
	"testing"

	"studyforge/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLesson(t *testing.T, title string) models.Lesson {
	t.Helper()

	subject := models.Subject{Name: "Physics " + t.Name(), NameAr: "الفيزياء"}
	require.NoError(t, db.Create(&subject).Error)

	lesson := models.Lesson{
		SubjectID:       subject.ID,
		Title:           title,
		TitleAr:         "درس " + title,
		DifficultyLevel: 1,
		SequenceOrder:   1,
		PointsReward:    10,
		IsPublished:     true,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func TestAdminCreatesLesson(t *testing.T) {
	userID, token := registerUser(t, "teacher1")
	makeAdmin(t, userID)

	resp := doJSON(t, "POST", "/api/admin/subjects", token, map[string]string{
		"name":    "Math " + t.Name(),
		"name_ar": "الرياضيات",
		"color":   "#2563eb",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var created struct {
		Subject models.Subject `json:"subject"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.Subject.ID)

	resp = doJSON(t, "POST", "/api/admin/lessons", token, fiber.Map{
		"subject_id":    created.Subject.ID,
		"title":         "Fractions",
		"title_ar":      "الكسور",
		"content":       "...",
		"points_reward": 25,
		"is_published":  true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Lesson models.Lesson `json:"lesson"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, "Fractions", result.Lesson.Title)
	assert.Equal(t, userID, result.Lesson.AuthorID)
	assert.Equal(t, 25, result.Lesson.PointsReward)
	assert.True(t, result.Lesson.IsPublished)

	// Omitted reward falls back to the default; new lessons start as drafts.
	resp = doJSON(t, "POST", "/api/admin/lessons", token, fiber.Map{
		"subject_id": created.Subject.ID,
		"title":      "Decimals",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, 10, result.Lesson.PointsReward)
	assert.False(t, result.Lesson.IsPublished)
}

func TestAdminRoutesRejectStudents(t *testing.T) {
	_, token := registerUser(t, "student9")

	resp := doJSON(t, "POST", "/api/admin/subjects", token, map[string]string{"name": "Nope"})
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCompleteLessonAwardsOnce(t *testing.T) {
	userID, token := registerUser(t, "learner1")

	subject := models.Subject{Name: "Physics " + t.Name()}
	require.NoError(t, db.Create(&subject).Error)
	lesson := models.Lesson{
		SubjectID:    subject.ID,
		Title:        "Motion",
		PointsReward: 15,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&lesson).Error)

	path := "/api/lessons/" + itoa(lesson.ID) + "/complete"

	resp := doJSON(t, "POST", path, token, fiber.Map{"score": 90, "time_spent": 120})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Progress models.LessonProgress `json:"progress"`
	}
	decodeBody(t, resp, &result)
	assert.NotNil(t, result.Progress.CompletedAt)
	assert.Equal(t, 90, result.Progress.Score)

	// The award is the lesson's own reward, not a flat rate.
	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	assert.Equal(t, 15, profile.Points)

	var achievements int64
	db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_type = ?", userID, "first_lesson").
		Count(&achievements)
	assert.Equal(t, int64(1), achievements)

	// Completing again updates the record without a second award.
	resp = doJSON(t, "POST", path, token, fiber.Map{"score": 100, "time_spent": 60})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, 100, result.Progress.Score)

	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	assert.Equal(t, 15, profile.Points)
}

func TestGetLessonsHidesUnpublished(t *testing.T) {
	_, token := registerUser(t, "learner4")

	subject := models.Subject{Name: "Biology " + t.Name()}
	require.NoError(t, db.Create(&subject).Error)

	published := models.Lesson{SubjectID: subject.ID, Title: "Cells", IsPublished: true, PointsReward: 10}
	draft := models.Lesson{SubjectID: subject.ID, Title: "Genetics draft", IsPublished: false, PointsReward: 10}
	require.NoError(t, db.Create(&published).Error)
	require.NoError(t, db.Create(&draft).Error)

	resp := doJSON(t, "GET", "/api/lessons?subject_id="+itoa(subject.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Lessons []models.Lesson `json:"lessons"`
	}
	decodeBody(t, resp, &result)
	require.Len(t, result.Lessons, 1)
	assert.Equal(t, "Cells", result.Lessons[0].Title)
}

func TestCompleteMissingLesson(t *testing.T) {
	_, token := registerUser(t, "learner2")

	resp := doJSON(t, "POST", "/api/lessons/999999/complete", token, fiber.Map{"score": 50})
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetLessonsSearchFilter(t *testing.T) {
	_, token := registerUser(t, "learner3")
	seedLesson(t, "Thermodynamics-"+t.Name())
	seedLesson(t, "Optics-"+t.Name())

	resp := doJSON(t, "GET", "/api/lessons?search=Thermodynamics-"+t.Name(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Lessons []models.Lesson `json:"lessons"`
	}
	decodeBody(t, resp, &result)
	require.Len(t, result.Lessons, 1)
	assert.Contains(t, result.Lessons[0].Title, "Thermodynamics")
}
