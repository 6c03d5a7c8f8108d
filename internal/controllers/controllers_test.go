package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"jeevanid/internal/chat"
	"jeevanid/internal/middleware"
)

func TestValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"+91 9876543210", true},
		{"5876543210", false}, // mobile numbers start 6-9
		{"98765", false},
		{"98765432101", false},
		{"abcdefghij", false},
	}
	for _, c := range cases {
		if got := validPhone(c.phone); got != c.want {
			t.Fatalf("validPhone(%q) = %v, want %v", c.phone, got, c.want)
		}
	}
}

func TestComputeRiskScore(t *testing.T) {
	cases := []struct {
		name        string
		age         int
		chronic     string
		vaccination string
		symptoms    []string
		wantLevel   string
	}{
		{"young healthy", 25, "", "full", nil, "low"},
		{"elderly unvaccinated", 65, "", "none", nil, "moderate"},
		{"chronic plus symptoms", 50, "diabetes,hypertension", "partial", []string{"chest_pain"}, "high"},
		{"high risk symptom only", 30, "", "full", []string{"blood_in_sputum"}, "low"},
		{"many mild symptoms", 30, "", "none", []string{"headache", "fatigue"}, "moderate"},
	}
	for _, c := range cases {
		score, level := computeRiskScore(c.age, c.chronic, c.vaccination, c.symptoms)
		if level != c.wantLevel {
			t.Fatalf("%s: level = %q (score %d), want %q", c.name, level, score, c.wantLevel)
		}
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	wkbBytes, err := pointToWKB(76.2673, 9.9312)
	if err != nil {
		t.Fatalf("pointToWKB: %v", err)
	}
	lng, lat, err := wkbToLngLat(wkbBytes)
	if err != nil {
		t.Fatalf("wkbToLngLat: %v", err)
	}
	if lng != 76.2673 || lat != 9.9312 {
		t.Fatalf("round trip = (%v, %v)", lng, lat)
	}
}

func TestGeoJSONToWKB(t *testing.T) {
	wkbBytes, err := geoJSONToWKB(`{"type":"Point","coordinates":[76.3419,10.0159]}`)
	if err != nil {
		t.Fatalf("geoJSONToWKB: %v", err)
	}
	lng, lat, err := wkbToLngLat(wkbBytes)
	if err != nil {
		t.Fatalf("wkbToLngLat: %v", err)
	}
	if lng != 76.3419 || lat != 10.0159 {
		t.Fatalf("decoded = (%v, %v)", lng, lat)
	}

	if _, err := geoJSONToWKB(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`); err == nil {
		t.Fatalf("expected error for non-point geometry")
	}
	if _, err := geoJSONToWKB("not json"); err == nil {
		t.Fatalf("expected error for malformed GeoJSON")
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"worker", "worker"},
		{"Doctor", "doctor"},
		{" ADMIN ", "admin"},
		{"superuser", "worker"},
		{"", "worker"},
	}
	for _, c := range cases {
		if got := normalizeRole(c.in); got != c.want {
			t.Fatalf("normalizeRole(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRespondDBError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"pgx duplicate key", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"pq duplicate key", &pq.Error{Code: "23505"}, http.StatusConflict},
		{"pgx permission denied", &pgconn.PgError{Code: "42501"}, http.StatusForbidden},
		{"pgx undefined table", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		respondDBError(ctx, c.err, "record missing", "record exists")
		if w.Code != c.wantStatus {
			t.Fatalf("%s: status %d, want %d", c.name, w.Code, c.wantStatus)
		}
		if c.wantStatus == http.StatusConflict && !strings.Contains(w.Body.String(), "record exists") {
			t.Fatalf("%s: conflict body should carry the duplicate message, got %s", c.name, w.Body.String())
		}
	}
}

func linkRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/otp/link", middleware.RequireAuth(), LinkWorker)
	return r
}

func postLinkJSON(t *testing.T, r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/link", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestLinkWorkerRequiresVerifiedHealthID(t *testing.T) {
	r := linkRouter()

	// A plain session token was never through OTP verification.
	session, err := middleware.GenerateToken(3, "worker")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w := postLinkJSON(t, r, session, `{"health_id":"WH-AB12-00000001"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("session token: status %d, want 403", w.Code)
	}

	// A link token only covers the health ID the code was checked against.
	link, err := middleware.GenerateLinkToken(3, "WH-AB12-00000001", time.Minute)
	if err != nil {
		t.Fatalf("GenerateLinkToken: %v", err)
	}
	w = postLinkJSON(t, r, link, `{"health_id":"WH-CD34-00000002"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("mismatched health ID: status %d, want 403", w.Code)
	}
}

func TestCreateWorkerProfileRejectsBadHealthID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/worker/profile", CreateWorkerProfile)

	w, out := postJSON(t, r, "/worker/profile",
		`{"full_name":"Ravi Kumar","phone":"9876543210","health_id":"not-a-health-id"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 (%v)", w.Code, out)
	}
}

func chatRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat", HandleChat)
	r.POST("/lang/detect", DetectLanguage)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("response not JSON: %v (%s)", err, w.Body.String())
		}
	}
	return w, out
}

func TestHandleChatEmergencyShortCircuit(t *testing.T) {
	SetChatClient(nil) // any AI call would fall back; emergencies never reach it
	r := chatRouter()

	w, out := postJSON(t, r, "/chat", `{"message":"I have severe chest pain right now"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if out["emergency"] != true {
		t.Fatalf("expected emergency flag, got %v", out)
	}
	if out["language"] != "en" {
		t.Fatalf("language = %v", out["language"])
	}
	if reply, _ := out["reply"].(string); !strings.Contains(reply, "108") {
		t.Fatalf("emergency reply should mention 108, got %q", reply)
	}
}

func TestHandleChatDetectsLanguage(t *testing.T) {
	SetChatClient(nil)
	r := chatRouter()

	w, out := postJSON(t, r, "/chat", `{"message":"मुझे सीने में दर्द हो रहा है"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if out["language"] != "hi" || out["emergency"] != true {
		t.Fatalf("got %v", out)
	}
}

func TestHandleChatFallbackWithoutClient(t *testing.T) {
	SetChatClient(nil)
	r := chatRouter()

	w, out := postJSON(t, r, "/chat", `{"message":"what should I eat for low iron"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if out["emergency"] != false {
		t.Fatalf("expected non-emergency, got %v", out)
	}
	if reply, _ := out["reply"].(string); reply == "" {
		t.Fatalf("expected a fallback reply")
	}
}

func TestHandleChatUsesClientReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Eat leafy greens and lentils."}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	client := chat.NewClient("key", "")
	client.SetBaseURL(srv.URL)
	SetChatClient(client)
	defer SetChatClient(nil)

	r := chatRouter()
	w, out := postJSON(t, r, "/chat", `{"message":"what should I eat for low iron"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if out["reply"] != "Eat leafy greens and lentils." {
		t.Fatalf("reply = %v", out["reply"])
	}
}

func TestDetectLanguageEndpoint(t *testing.T) {
	r := chatRouter()

	w, out := postJSON(t, r, "/lang/detect", `{"text":"வணக்கம்"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if out["language"] != "ta" {
		t.Fatalf("language = %v", out["language"])
	}

	w, _ = postJSON(t, r, "/lang/detect", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing text: status %d, want 400", w.Code)
	}
}
