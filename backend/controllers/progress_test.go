package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressOverview(t *testing.T) {
	_, token := registerUser(t, "tracker1")
	lesson := seedLesson(t, "Grammar")

	resp := doJSON(t, "POST", "/api/lessons/"+itoa(lesson.ID)+"/complete", token, fiber.Map{"score": 80})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", "/api/progress/overview", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var overview map[string]interface{}
	decodeBody(t, resp, &overview)
	assert.Equal(t, float64(10), overview["points"])
	assert.Equal(t, float64(1), overview["lessons_completed"])
	assert.Equal(t, float64(1), overview["achievements"])
}

func TestProgressMonthlyBreakdown(t *testing.T) {
	_, token := registerUser(t, "tracker2")
	lesson := seedLesson(t, "Vocabulary")

	resp := doJSON(t, "POST", "/api/lessons/"+itoa(lesson.ID)+"/complete", token, fiber.Map{"score": 70})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", "/api/progress", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Progress []map[string]interface{} `json:"progress"`
	}
	decodeBody(t, resp, &result)
	require.Len(t, result.Progress, 4)
	// The current month leads and holds the fresh completion.
	assert.Equal(t, float64(1), result.Progress[0]["lessons_completed"])
}

func TestLeaderboardRanksByPoints(t *testing.T) {
	idA, tokenA := registerUser(t, "ranker1")
	idB, _ := registerUser(t, "ranker2")

	require.NoError(t, db.Exec(
		"UPDATE user_profiles SET points = ? WHERE user_id = ?", 120, idA).Error)
	require.NoError(t, db.Exec(
		"UPDATE user_profiles SET points = ? WHERE user_id = ?", 300, idB).Error)

	resp := doJSON(t, "GET", "/api/leaderboard?limit=100", tokenA, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Leaderboard []struct {
			Rank     int    `json:"rank"`
			Username string `json:"username"`
			Points   int    `json:"points"`
		} `json:"leaderboard"`
	}
	decodeBody(t, resp, &result)
	require.NotEmpty(t, result.Leaderboard)

	// Ordering is points descending.
	for i := 1; i < len(result.Leaderboard); i++ {
		assert.GreaterOrEqual(t, result.Leaderboard[i-1].Points, result.Leaderboard[i].Points)
	}

	posOf := func(name string) int {
		for i, row := range result.Leaderboard {
			if row.Username == name {
				return i
			}
		}
		return -1
	}
	a, b := posOf("ranker1"), posOf("ranker2")
	require.GreaterOrEqual(t, a, 0)
	require.GreaterOrEqual(t, b, 0)
	assert.Less(t, b, a, "higher points rank first")
}
