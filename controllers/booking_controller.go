package controllers

import (
	"fmt"

	"abchotels/dto"
	"abchotels/models"
	"abchotels/response"
	"abchotels/services"
	"abchotels/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// CreateBooking godoc
// @Summary  Book a room
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    id    path  int                       true  "Room ID"
// @Param    body  body  dto.CreateBookingRequest  true  "Guest and stay"
// @Success  201  {object}  response.Response
// @Failure  400  {object}  response.Response
// @Failure  404  {object}  response.Response
// @Failure  409  {object}  response.Response
// @Router   /rooms/{id}/bookings [post]
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := ctrl.bookings.CreateBooking(c.Request.Context(), services.BookingInput{
		RoomID:          roomID,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, dto.BookingCreatedResponse{
		Booking: dto.NewBookingConfirmation(booking),
		Message: fmt.Sprintf("Booking submitted successfully! Your total is $%s. We will contact you soon.", booking.TotalPrice.StringFixed(2)),
	})
}

// CheckAvailability godoc
// @Summary  Check whether a room is free for a stay
// @Tags     bookings
// @Produce  json
// @Param    id         path   int     true  "Room ID"
// @Param    check_in   query  string  true  "YYYY-MM-DD"
// @Param    check_out  query  string  true  "YYYY-MM-DD"
// @Success  200  {object}  response.Response
// @Router   /rooms/{id}/availability [get]
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}

	res, err := ctrl.bookings.CheckAvailability(c.Request.Context(), roomID, c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := dto.AvailabilityResponse{
		RoomID:    res.Room.ID,
		CheckIn:   res.Stay.CheckIn.Format(models.DateLayout),
		CheckOut:  res.Stay.CheckOut.Format(models.DateLayout),
		Available: res.Available,
		Nights:    res.Stay.Nights(),
	}
	if res.Available {
		out.TotalPrice = &res.TotalPrice
	}
	response.Success(c, out)
}

// GetConfirmation godoc
// @Summary  Booking confirmation
// @Tags     bookings
// @Produce  json
// @Param    id  path  int  true  "Booking ID"
// @Success  200  {object}  response.Response
// @Failure  404  {object}  response.Response
// @Router   /bookings/{id}/confirmation [get]
func (ctrl *BookingController) GetConfirmation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := ctrl.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingConfirmation(booking))
}

// ListBookings godoc
// @Summary   Staff booking list
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     status   query  string  false  "pending, confirmed, cancelled, completed"
// @Param     room_id  query  int     false  "Room ID"
// @Param     city_id  query  int     false  "City ID"
// @Param     page     query  int     false  "Page"
// @Param     limit    query  int     false  "Page size"
// @Success   200  {object}  response.Response
// @Router    /admin/bookings [get]
func (ctrl *BookingController) ListBookings(c *gin.Context) {
	page := pagination(c)
	roomID, _ := utils.ParseID(c.Query("room_id"))
	cityID, _ := utils.ParseID(c.Query("city_id"))

	bookings, total, err := ctrl.bookings.ListBookings(c.Request.Context(), services.BookingListFilter{
		Status: c.Query("status"),
		RoomID: roomID,
		CityID: cityID,
		Page:   page,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, bookings, page.Page, page.Limit, int(total))
}

// UpdateBookingStatus godoc
// @Summary   Set a booking's status
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path  int                             true  "Booking ID"
// @Param     body  body  dto.UpdateBookingStatusRequest  true  "New status"
// @Success   200  {object}  response.Response
// @Router    /admin/bookings/{id}/status [put]
func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := ctrl.bookings.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}
