package controllers_test

import (
	"testing"
	"time"

	"studyforge/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	_, token := registerUser(t, "student1")
	assert.NotEmpty(t, token)

	resp := doJSON(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "student1",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decodeBody(t, resp, &result)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])
}

func TestLoginWrongPassword(t *testing.T) {
	registerUser(t, "student2")

	resp := doJSON(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "student2",
		"password": "wrong",
	})
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRequiresFields(t *testing.T) {
	resp := doJSON(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "incomplete",
	})
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	_, token := registerUser(t, "student3")

	resp := doJSON(t, "GET", "/api/user/profile", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decodeBody(t, resp, &result)
	assert.Equal(t, "student3", result["username"])
	assert.Equal(t, "student3@example.com", result["email"])
	assert.Equal(t, float64(0), result["points"])
}

func TestLoginStreakCountsCalendarDays(t *testing.T) {
	userID, _ := registerUser(t, "streaker1")

	login := func() {
		resp := doJSON(t, "POST", "/api/auth/login", "", map[string]string{
			"username": "streaker1",
			"password": "password123",
		})
		defer resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	streak := func() int {
		var profile models.UserProfile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		return profile.StreakDays
	}
	setLastActive := func(at time.Time, days int) {
		require.NoError(t, db.Model(&models.UserProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{"last_active": at, "streak_days": days}).Error)
	}

	// Several logins on the same day count as one.
	login()
	login()
	login()
	assert.Equal(t, 1, streak())

	// A login the day after the last one extends the streak.
	setLastActive(time.Now().AddDate(0, 0, -1), 3)
	login()
	assert.Equal(t, 4, streak())

	// A longer gap resets it.
	setLastActive(time.Now().AddDate(0, 0, -5), 9)
	login()
	assert.Equal(t, 1, streak())
}

func TestProfileRequiresToken(t *testing.T) {
	resp := doJSON(t, "GET", "/api/user/profile", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
