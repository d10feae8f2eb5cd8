package routes

import (
	"net/http"

	"abchotels/constants"
	"abchotels/controllers"
	"abchotels/middleware"
	"abchotels/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every controller the route table points at
type Handlers struct {
	Health   *controllers.HealthController
	Catalog  *controllers.CatalogController
	Bookings *controllers.BookingController
	Content  *controllers.ContentController
	Careers  *controllers.CareersController
	Auth     *controllers.AuthController
}

// Route is one row of the route table
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

func route(method, path string, handlers ...gin.HandlerFunc) Route {
	return Route{Method: method, Path: path, Handlers: handlers}
}

// PublicRoutes are open to guests
func PublicRoutes(h Handlers) []Route {
	return []Route{
		route(http.MethodGet, "/health", h.Health.Health),
		route(http.MethodGet, "/ping", h.Health.Ping),

		route(http.MethodGet, "/cities", h.Catalog.ListCities),
		route(http.MethodGet, "/cities/search", h.Catalog.SearchCities),
		route(http.MethodGet, "/cities/:id", h.Catalog.GetCity),
		route(http.MethodGet, "/room-types", h.Catalog.ListRoomTypes),
		route(http.MethodGet, "/room-types/:id", h.Catalog.GetRoomType),
		route(http.MethodGet, "/rooms/:id", h.Catalog.GetRoom),

		route(http.MethodGet, "/rooms/:id/availability", h.Bookings.CheckAvailability),
		route(http.MethodPost, "/rooms/:id/bookings", h.Bookings.CreateBooking),
		route(http.MethodGet, "/bookings/:id/confirmation", h.Bookings.GetConfirmation),

		route(http.MethodGet, "/faqs", h.Content.ListFAQs),
		route(http.MethodGet, "/contact", h.Content.GetContactPage),
		route(http.MethodPost, "/contact", h.Content.SubmitContact),

		route(http.MethodGet, "/careers/departments", h.Careers.ListDepartments),
		route(http.MethodGet, "/careers/jobs", h.Careers.ListJobs),
		route(http.MethodGet, "/careers/jobs/:id", h.Careers.GetJob),
		route(http.MethodPost, "/careers/jobs/:id/apply", h.Careers.Apply),

		route(http.MethodPost, "/auth/login", h.Auth.Login),
		route(http.MethodPost, "/auth/google", h.Auth.GoogleLogin),
	}
}

// AdminRoutes sit under /admin and need a staff or admin token
func AdminRoutes(h Handlers) []Route {
	return []Route{
		route(http.MethodGet, "/bookings", h.Bookings.ListBookings),
		route(http.MethodPut, "/bookings/:id/status", h.Bookings.UpdateBookingStatus),

		route(http.MethodPost, "/cities", h.Catalog.CreateCity),
		route(http.MethodPut, "/cities/:id", h.Catalog.UpdateCity),
		route(http.MethodDelete, "/cities/:id", h.Catalog.DeleteCity),
		route(http.MethodPost, "/room-types", h.Catalog.CreateRoomType),
		route(http.MethodPut, "/room-types/:id", h.Catalog.UpdateRoomType),
		route(http.MethodDelete, "/room-types/:id", h.Catalog.DeleteRoomType),
		route(http.MethodPost, "/rooms", h.Catalog.CreateRoom),
		route(http.MethodPut, "/rooms/:id", h.Catalog.UpdateRoom),
		route(http.MethodDelete, "/rooms/:id", h.Catalog.DeleteRoom),
		route(http.MethodPut, "/rooms/:id/availability", h.Catalog.SetRoomAvailability),
		route(http.MethodPost, "/uploads", h.Catalog.UploadImage),

		route(http.MethodGet, "/applications", h.Careers.ListApplications),
		route(http.MethodPut, "/applications/:id/status", h.Careers.UpdateApplicationStatus),
		route(http.MethodGet, "/contact-messages", h.Content.ListContactMessages),

		route(http.MethodPost, "/users", middleware.RoleMiddleware(constants.RoleAdmin), h.Auth.CreateStaff),
	}
}

func register(group *gin.RouterGroup, table []Route) {
	for _, r := range table {
		group.Handle(r.Method, r.Path, r.Handlers...)
	}
}

// SetupRoutes mounts the API under /api/v1 plus the staff websocket and swagger UI
func SetupRoutes(router *gin.Engine, h Handlers, tokens services.TokenVerifier, m *melody.Melody) {
	staffOnly := middleware.AuthMiddleware(tokens, constants.RoleStaff, constants.RoleAdmin)

	v1 := router.Group("/api/v1")
	register(v1, PublicRoutes(h))
	register(v1.Group("/admin", staffOnly), AdminRoutes(h))

	router.GET("/ws", staffOnly, controllers.StaffSocket(m))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
