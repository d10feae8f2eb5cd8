package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"abchotels/constants"
	"abchotels/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

func newTestRouter(tokens *services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// handlers are never reached in these tests; guards answer first
	SetupRoutes(r, Handlers{}, tokens, melody.New())
	return r
}

func TestRouteTable(t *testing.T) {
	r := newTestRouter(services.NewTokenService("secret", time.Hour))

	registered := map[string]bool{}
	for _, info := range r.Routes() {
		registered[info.Method+" "+info.Path] = true
	}

	want := []string{
		"GET /api/v1/health",
		"GET /api/v1/cities/search",
		"GET /api/v1/rooms/:id/availability",
		"POST /api/v1/rooms/:id/bookings",
		"GET /api/v1/bookings/:id/confirmation",
		"POST /api/v1/careers/jobs/:id/apply",
		"POST /api/v1/contact",
		"POST /api/v1/auth/google",
		"PUT /api/v1/admin/bookings/:id/status",
		"PUT /api/v1/admin/rooms/:id/availability",
		"DELETE /api/v1/admin/room-types/:id",
		"GET /api/v1/admin/contact-messages",
		"POST /api/v1/admin/users",
		"GET /ws",
		"GET /swagger/*any",
	}
	for _, key := range want {
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestAdminGuards(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	staff, _ := tokens.GenerateToken(services.UserInfo{UserId: 1, Role: constants.RoleStaff})
	r := newTestRouter(tokens)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"bookings without token", http.MethodGet, "/api/v1/admin/bookings", "", http.StatusUnauthorized},
		{"upload without token", http.MethodPost, "/api/v1/admin/uploads", "", http.StatusUnauthorized},
		{"staff creating users", http.MethodPost, "/api/v1/admin/users", staff, http.StatusForbidden},
		{"socket without token", http.MethodGet, "/ws", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
