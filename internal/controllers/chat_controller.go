package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jeevanid/internal/chat"
	"jeevanid/internal/lang"
)

var geminiClient *chat.Client

// InitChat wires the Gemini client. Without an API key the chatbot always
// answers with the canned fallback, everything else keeps working.
func InitChat() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logrus.Warn("GEMINI_API_KEY not set, chatbot will answer with fallback messages only")
		return
	}
	geminiClient = chat.NewClient(apiKey, os.Getenv("GEMINI_MODEL"))
}

// SetChatClient replaces the client, used by tests.
func SetChatClient(c *chat.Client) { geminiClient = c }

type chatInput struct {
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

// HandleChat answers one user message. Emergency phrases short-circuit
// before any AI call; AI failures never surface raw errors to the user.
func HandleChat(c *gin.Context) {
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	language := input.Language
	if language == "" || language == "auto" {
		language = lang.Detect(input.Message)
	}

	if chat.IsEmergency(input.Message) {
		c.JSON(http.StatusOK, gin.H{
			"reply":     lang.T(language, "emergency_response"),
			"emergency": true,
			"language":  language,
		})
		return
	}

	if geminiClient == nil {
		c.JSON(http.StatusOK, gin.H{
			"reply":     lang.T(language, "chat_unavailable"),
			"emergency": false,
			"language":  language,
		})
		return
	}

	reply, err := geminiClient.Ask(c.Request.Context(), input.Message)
	if err != nil {
		key := "chat_unavailable"
		if errors.Is(err, chat.ErrBlocked) {
			key = "chat_blocked"
		} else {
			logrus.WithError(err).Warn("Chat completion failed")
		}
		c.JSON(http.StatusOK, gin.H{
			"reply":     lang.T(language, key),
			"emergency": false,
			"language":  language,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":     reply,
		"emergency": false,
		"language":  language,
	})
}

// DetectLanguage exposes script-based language detection for clients that
// feed it into speech synthesis voice selection.
func DetectLanguage(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang.Detect(input.Text)})
}
