package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"jeevanid/internal/middleware"
	"jeevanid/internal/voice"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced by the HTTP layer
	},
}

// voiceEvent is one message from the client's speech recognizer.
type voiceEvent struct {
	Type       string  `json:"type"` // "interim", "final", "error", "stop"
	Text       string  `json:"text,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Code       string  `json:"code,omitempty"` // recognizer error code
}

// wsWriter serializes writes: session timers fire on their own goroutines
// while the read loop may echo interims.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) send(v interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.WriteJSON(v); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			logrus.WithError(err).Warn("Failed to write voice session message")
		}
	}
}

// HandleVoiceWebSocket runs one voice capture session per connection. The
// client streams recognizer events; the server owns the transcript
// accumulation, the idle debounce and the hard ceiling.
func HandleVoiceWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}
	claims, err := middleware.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade voice WebSocket connection")
		return
	}
	defer conn.Close()

	logrus.WithField("user_id", claims.UserID).Info("Voice session started")

	writer := &wsWriter{conn: conn}
	session := voice.NewSession(voice.Config{}, voice.Callbacks{
		OnResult: func(r voice.Result) {
			writer.send(gin.H{
				"type":       "result",
				"transcript": r.Transcript,
				"confidence": r.Confidence,
				"language":   r.Language,
			})
		},
		OnInterim: func(text string) {
			writer.send(gin.H{"type": "interim", "text": text})
		},
		OnError: func(msg string) {
			writer.send(gin.H{"type": "error", "message": msg})
		},
		OnEnd: func() {
			writer.send(gin.H{"type": "end"})
		},
	})
	defer session.Close()

	for {
		var ev voiceEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("user_id", claims.UserID).Info("Voice WebSocket closed")
			} else {
				logrus.WithError(err).WithField("user_id", claims.UserID).Warn("Error reading voice WebSocket message")
			}
			return
		}

		switch ev.Type {
		case "interim":
			session.Interim(ev.Text)
		case "final":
			session.Final(ev.Text, ev.Confidence)
		case "error":
			session.RecognitionError(ev.Code)
		case "stop":
			session.Stop()
		default:
			logrus.WithField("type", ev.Type).Warn("Unknown voice event type, ignoring")
		}
	}
}
