package controllers

import (
	"fmt"
	"log"
	"net/http"
	"studyforge/backend/config"

	"github.com/gofiber/fiber/v2"
	openai "github.com/sashabaranov/go-openai"
)

// chatUpstreamError is the localized message shown when the AI provider
// call fails. The chat widget renders it as a normal assistant bubble.
const chatUpstreamError = "حدث خطأ في الاتصال بالمساعد الذكي"

const tutorSystemPrompt = `أنت مساعد تعليمي ذكي في منصة StudyForge. مهمتك مساعدة الطلاب في فهم المواد الدراسية التالية:
- الكيمياء
- الفيزياء
- اللغة العربية
- اللغة الإنجليزية
- الرياضيات

يجب أن تجيب باللغة العربية بشكل واضح ومفيد. اشرح المفاهيم بطريقة بسيطة ومناسبة للطلاب.
إذا كان لديك سياق عن الدرس الحالي، استخدمه لتقديم إجابات أكثر دقة.`

// ChatController relays a single student message to the upstream chat
// completion provider. One blocking request per call, no retry, no
// streaming.
type ChatController struct {
	Client *openai.Client
	Model  string
	Logger *log.Logger
}

// openRouterHeaders attaches the attribution headers OpenRouter expects
// on every request.
type openRouterHeaders struct {
	base    http.RoundTripper
	siteURL string
}

func (t *openRouterHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", t.siteURL)
	req.Header.Set("X-Title", "StudyForge Educational Platform")
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func NewChatController(cfg *config.Config, logger *log.Logger) *ChatController {
	clientConfig := openai.DefaultConfig(cfg.OpenRouterKey)
	clientConfig.BaseURL = cfg.OpenRouterBaseURL
	clientConfig.HTTPClient = &http.Client{
		Transport: &openRouterHeaders{siteURL: cfg.SiteURL},
	}

	return &ChatController{
		Client: openai.NewClientWithConfig(clientConfig),
		Model:  cfg.ChatModel,
		Logger: logger,
	}
}

// Chat godoc
// @Summary AI tutor chat
// @Description Forwards a message (plus optional lesson context) to the AI provider and relays the reply
// @Tags chat
// @Accept json
// @Produce json
// @Router /chat [post]
func (cc *ChatController) Chat(c *fiber.Ctx) error {
	var input struct {
		Message string `json:"message"`
		Context string `json:"context"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	systemPrompt := tutorSystemPrompt
	if input.Context != "" {
		systemPrompt = fmt.Sprintf("%s\n\nالسياق الحالي: %s", tutorSystemPrompt, input.Context)
	}

	resp, err := cc.Client.CreateChatCompletion(c.Context(), openai.ChatCompletionRequest{
		Model: cc.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: input.Message},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		cc.Logger.Printf("chat completion failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": chatUpstreamError,
		})
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		cc.Logger.Printf("chat completion returned no content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": chatUpstreamError,
		})
	}

	return c.JSON(fiber.Map{
		"message": resp.Choices[0].Message.Content,
	})
}
