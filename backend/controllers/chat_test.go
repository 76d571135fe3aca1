package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestChatRepliesInArabic(t *testing.T) {
	_, token := registerUser(t, "chatter1")

	resp := doJSON(t, "POST", "/api/chat", token, map[string]string{
		"message": "اشرح لي الجاذبية",
		"context": "درس الفيزياء الأول",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	decodeBody(t, resp, &result)
	assert.Equal(t, "مرحباً! كيف أستطيع مساعدتك؟", result["message"])
}

func TestChatRequiresMessage(t *testing.T) {
	_, token := registerUser(t, "chatter2")

	resp := doJSON(t, "POST", "/api/chat", token, map[string]string{})
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestChatUpstreamFailure(t *testing.T) {
	_, token := registerUser(t, "chatter3")

	resp := doJSON(t, "POST", "/api/chat", token, map[string]string{
		"message": "upstream-boom",
	})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var result map[string]string
	decodeBody(t, resp, &result)
	assert.Equal(t, "حدث خطأ في الاتصال بالمساعد الذكي", result["error"])
}

func TestChatRequiresToken(t *testing.T) {
	resp := doJSON(t, "POST", "/api/chat", "", map[string]string{"message": "hi"})
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
