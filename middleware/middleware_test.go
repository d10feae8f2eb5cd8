package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"abchotels/constants"
	"abchotels/response"
	"abchotels/services"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(tokens *services.TokenService, roles ...int) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(tokens, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetUint(UserIDKey), "role": c.GetInt(UserRoleKey)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	staff, _ := tokens.GenerateToken(services.UserInfo{UserId: 7, Role: constants.RoleStaff})
	guest, _ := tokens.GenerateToken(services.UserInfo{UserId: 8, Role: constants.RoleGuest})
	foreign, _ := services.NewTokenService("other-secret", time.Hour).GenerateToken(services.UserInfo{UserId: 7, Role: constants.RoleStaff})

	r := newGuardedRouter(tokens, constants.RoleStaff, constants.RoleAdmin)

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong signature", "Bearer " + foreign, "", http.StatusUnauthorized},
		{"not bearer", "Basic " + staff, "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + guest, "", http.StatusForbidden},
		{"staff", "Bearer " + staff, "", http.StatusOK},
		{"lowercase scheme", "bearer " + staff, "", http.StatusOK},
		{"query token", "", staff, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/admin"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK && !strings.Contains(w.Body.String(), `"userID":7`) {
				t.Errorf("user id not set on context: %s", w.Body.String())
			}
			if tt.want == http.StatusUnauthorized && !strings.Contains(w.Body.String(), "UNAUTHORIZED") {
				t.Errorf("expected UNAUTHORIZED code in body: %s", w.Body.String())
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	staff, _ := tokens.GenerateToken(services.UserInfo{UserId: 7, Role: constants.RoleStaff})

	r := gin.New()
	group := r.Group("/", AuthMiddleware(tokens))
	group.POST("/users", RoleMiddleware(constants.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+staff)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("staff creating users: status = %d, want 403", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	if len(generated) != 36 || w.Body.String() != generated {
		t.Errorf("generated id %q, body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("caller id should be echoed, got %q", w.Header().Get(RequestIDHeader))
	}
}

func TestRecovery(t *testing.T) {
	var logs strings.Builder
	log := slog.New(slog.NewTextHandler(&logs, nil))

	r := gin.New()
	r.Use(RequestID(), Recovery(log), AccessLog(log))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	if strings.Contains(string(body), "kaboom") {
		t.Error("panic value must not leak to the client")
	}
	if !strings.Contains(logs.String(), "kaboom") {
		t.Error("panic should be logged")
	}
	if !strings.Contains(logs.String(), "panic trace") || !strings.Contains(logs.String(), "middleware_test.go") {
		t.Error("stack trace should be logged")
	}
	if strings.Contains(logs.String(), "\x1b[") {
		t.Error("terminal colour codes should be stripped")
	}
}

func TestRecovery_KeepsEnvelope(t *testing.T) {
	var logs strings.Builder
	r := gin.New()
	r.Use(Recovery(slog.New(slog.NewTextHandler(&logs, nil))))
	r.GET("/boom", func(c *gin.Context) { panic(errors.New("nil map")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not the JSON envelope: %v (%q)", err, w.Body.String())
	}
	if w.Code != http.StatusInternalServerError || body.Mess == "" || body.Data != nil {
		t.Errorf("status %d, envelope %+v", w.Code, body)
	}
}
