package controllers

import (
	"abchotels/dto"
	"abchotels/repository"
	"abchotels/response"
	"abchotels/services"
	"abchotels/utils"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListCities godoc
// @Summary  Active cities with starting price and room count
// @Tags     catalog
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /cities [get]
func (ctrl *CatalogController) ListCities(c *gin.Context) {
	cities, err := ctrl.catalog.ListCities(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, cities)
}

// SearchCities godoc
// @Summary  Fuzzy city search
// @Tags     catalog
// @Produce  json
// @Param    q  query  string  true  "Search text"
// @Success  200  {object}  response.Response
// @Router   /cities/search [get]
func (ctrl *CatalogController) SearchCities(c *gin.Context) {
	hits, err := ctrl.catalog.SearchCities(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hits)
}

// GetCity godoc
// @Summary  City page
// @Tags     catalog
// @Produce  json
// @Param    id         path   int     true   "City ID"
// @Param    capacity   query  int     false  "Minimum guests"
// @Param    check_in   query  string  false  "YYYY-MM-DD"
// @Param    check_out  query  string  false  "YYYY-MM-DD"
// @Success  200  {object}  response.Response
// @Failure  404  {object}  response.Response
// @Router   /cities/{id} [get]
func (ctrl *CatalogController) GetCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := ctrl.catalog.CityDetail(c.Request.Context(), id, availabilityQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, detail)
}

// ListRoomTypes godoc
// @Summary  Room types with optional filters
// @Tags     catalog
// @Produce  json
// @Param    room_type  query  string  false  "Name contains"
// @Param    price_min  query  number  false  "Minimum nightly price"
// @Param    price_max  query  number  false  "Maximum nightly price"
// @Param    capacity   query  int     false  "Minimum guests"
// @Success  200  {object}  response.Response
// @Router   /room-types [get]
func (ctrl *CatalogController) ListRoomTypes(c *gin.Context) {
	roomTypes, err := ctrl.catalog.ListRoomTypes(c.Request.Context(), repository.RoomTypeFilter{
		NameContains: c.Query("room_type"),
		PriceMin:     utils.OptionalDecimal(c.Query("price_min")),
		PriceMax:     utils.OptionalDecimal(c.Query("price_max")),
		MinCapacity:  utils.OptionalInt(c.Query("capacity")),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, roomTypes)
}

// GetRoomType godoc
// @Summary  Room type page with bookable rooms and similar types
// @Tags     catalog
// @Produce  json
// @Param    id  path  int  true  "Room type ID"
// @Success  200  {object}  response.Response
// @Failure  404  {object}  response.Response
// @Router   /room-types/{id} [get]
func (ctrl *CatalogController) GetRoomType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := ctrl.catalog.RoomTypeDetail(c.Request.Context(), id, availabilityQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, detail)
}

// GetRoom godoc
// @Summary  Room details
// @Tags     catalog
// @Produce  json
// @Param    id  path  int  true  "Room ID"
// @Success  200  {object}  response.Response
// @Failure  404  {object}  response.Response
// @Router   /rooms/{id} [get]
func (ctrl *CatalogController) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := ctrl.catalog.RoomDetail(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (ctrl *CatalogController) CreateCity(c *gin.Context) {
	var req dto.CityRequest
	if !bindJSON(c, &req) {
		return
	}
	city, err := ctrl.catalog.CreateCity(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, city)
}

func (ctrl *CatalogController) UpdateCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CityRequest
	if !bindJSON(c, &req) {
		return
	}
	city, err := ctrl.catalog.UpdateCity(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, city)
}

func (ctrl *CatalogController) DeleteCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.catalog.DeleteCity(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

func (ctrl *CatalogController) CreateRoomType(c *gin.Context) {
	var req dto.RoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	rt, err := ctrl.catalog.CreateRoomType(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, rt)
}

func (ctrl *CatalogController) UpdateRoomType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.RoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	rt, err := ctrl.catalog.UpdateRoomType(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rt)
}

func (ctrl *CatalogController) DeleteRoomType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.catalog.DeleteRoomType(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

func (ctrl *CatalogController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := ctrl.catalog.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (ctrl *CatalogController) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := ctrl.catalog.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (ctrl *CatalogController) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.catalog.DeleteRoom(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

// SetRoomAvailability godoc
// @Summary   Take a room in or out of service
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path  int                          true  "Room ID"
// @Param     body  body  dto.RoomAvailabilityRequest  true  "Service flag"
// @Success   200  {object}  response.Response
// @Router    /admin/rooms/{id}/availability [put]
func (ctrl *CatalogController) SetRoomAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.RoomAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := ctrl.catalog.SetRoomAvailability(c.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// UploadImage godoc
// @Summary   Upload a catalog image
// @Tags      admin
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     file  formData  file  true  "Image"
// @Success   201  {object}  response.Response
// @Router    /admin/uploads [post]
func (ctrl *CatalogController) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unreadable file")
		return
	}
	defer src.Close()

	url, err := ctrl.catalog.UploadImage(c.Request.Context(), fileHeader.Filename, src, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.UploadResponse{URL: url})
}
