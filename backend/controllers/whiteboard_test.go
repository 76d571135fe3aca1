package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhiteboardRoundTrip(t *testing.T) {
	_, token := registerUser(t, "artist1")
	lesson := seedLesson(t, "Geometry")

	path := "/api/whiteboard/" + itoa(lesson.ID)

	// Nothing saved yet: empty state, not an error.
	resp := doJSON(t, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Data string `json:"data"`
	}
	decodeBody(t, resp, &result)
	assert.Empty(t, result.Data)

	resp = doJSON(t, "PUT", path, token, map[string]string{"data": `{"strokes":[1,2,3]}`})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, `{"strokes":[1,2,3]}`, result.Data)

	// Saving again replaces the drawing.
	resp = doJSON(t, "PUT", path, token, map[string]string{"data": `{"strokes":[]}`})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, `{"strokes":[]}`, result.Data)
}

func TestWhiteboardIsPerUser(t *testing.T) {
	_, tokenA := registerUser(t, "artist2")
	_, tokenB := registerUser(t, "artist3")
	lesson := seedLesson(t, "Algebra")

	path := "/api/whiteboard/" + itoa(lesson.ID)

	resp := doJSON(t, "PUT", path, tokenA, map[string]string{"data": "mine"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", path, tokenB, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Data string `json:"data"`
	}
	decodeBody(t, resp, &result)
	assert.Empty(t, result.Data)
}
