package services

import (
	"context"
	"io"
	"strings"

	"abchotels/dto"
	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"

	"github.com/shopspring/decimal"
)

// CityDetail is the city page: bookable room types plus the other destinations
type CityDetail struct {
	City          models.City      `json:"city"`
	RoomTypes     []RoomTypeOffer  `json:"roomTypes"`
	StartingPrice *decimal.Decimal `json:"startingPrice"`
	OtherCities   []models.City    `json:"otherCities"`
}

// RoomTypeDetail is the room type page
type RoomTypeDetail struct {
	RoomType       models.RoomType   `json:"roomType"`
	AvailableRooms []models.Room     `json:"availableRooms"`
	Similar        []models.RoomType `json:"similarRoomTypes"`
}

type CatalogService struct {
	cities       repository.CityRepository
	roomTypes    repository.RoomTypeRepository
	rooms        repository.RoomRepository
	availability *AvailabilityService
	media        MediaStore
	log          logger.Logger
}

func NewCatalogService(
	cities repository.CityRepository,
	roomTypes repository.RoomTypeRepository,
	rooms repository.RoomRepository,
	availability *AvailabilityService,
	media MediaStore,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		cities:       cities,
		roomTypes:    roomTypes,
		rooms:        rooms,
		availability: availability,
		media:        media,
		log:          log,
	}
}

func (s *CatalogService) ListCities(ctx context.Context) ([]CitySummary, error) {
	return s.availability.CitySummaries(ctx)
}

// CityDetail hides inactive cities behind not-found
func (s *CatalogService) CityDetail(ctx context.Context, id uint, q AvailabilityQuery) (*CityDetail, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !city.IsActive {
		return nil, apperrors.NotFound(apperrors.ErrCityNotFound)
	}

	offers, err := s.availability.AvailableRoomTypesForCity(ctx, id, q)
	if err != nil {
		return nil, err
	}
	price, err := s.availability.StartingPriceForCity(ctx, id, q)
	if err != nil {
		return nil, err
	}

	all, err := s.cities.List(ctx, true)
	if err != nil {
		return nil, err
	}
	others := make([]models.City, 0, len(all))
	for _, c := range all {
		if c.ID != city.ID {
			others = append(others, c)
		}
	}

	if offers == nil {
		offers = []RoomTypeOffer{}
	}
	return &CityDetail{
		City:          *city,
		RoomTypes:     offers,
		StartingPrice: price,
		OtherCities:   others,
	}, nil
}

// SearchCities ranks active cities against a free-text query
func (s *CatalogService) SearchCities(ctx context.Context, query string) ([]ScoredCity, error) {
	cities, err := s.cities.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return rankCities(query, cities), nil
}

func (s *CatalogService) ListRoomTypes(ctx context.Context, filter repository.RoomTypeFilter) ([]models.RoomType, error) {
	return s.roomTypes.List(ctx, filter)
}

func (s *CatalogService) RoomTypeDetail(ctx context.Context, id uint, q AvailabilityQuery) (*RoomTypeDetail, error) {
	rt, err := s.roomTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rooms, err := s.availability.AvailableRooms(ctx, id, q)
	if err != nil {
		return nil, err
	}
	similar, err := s.availability.SimilarRoomTypes(ctx, id)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	if similar == nil {
		similar = []models.RoomType{}
	}
	return &RoomTypeDetail{RoomType: *rt, AvailableRooms: rooms, Similar: similar}, nil
}

func (s *CatalogService) RoomDetail(ctx context.Context, id uint) (*models.Room, error) {
	return s.rooms.FindByID(ctx, id)
}

func (s *CatalogService) CreateCity(ctx context.Context, req dto.CityRequest) (*models.City, error) {
	city := &models.City{IsActive: true}
	applyCity(city, req)
	if err := s.cities.Create(ctx, city); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "city %q created", city.Name)
	return city, nil
}

func (s *CatalogService) UpdateCity(ctx context.Context, id uint, req dto.CityRequest) (*models.City, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCity(city, req)
	if err := s.cities.Update(ctx, city); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "city %d updated", id)
	return city, nil
}

func (s *CatalogService) DeleteCity(ctx context.Context, id uint) error {
	if err := s.cities.Delete(ctx, id); err != nil {
		return err
	}
	s.catalogChanged(ctx, "city %d deleted", id)
	return nil
}

func (s *CatalogService) CreateRoomType(ctx context.Context, req dto.RoomTypeRequest) (*models.RoomType, error) {
	if err := validatePrice(req.PricePerNight); err != nil {
		return nil, err
	}
	rt := &models.RoomType{}
	applyRoomType(rt, req)
	if err := s.roomTypes.Create(ctx, rt); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "room type %q created", rt.Name)
	return rt, nil
}

func (s *CatalogService) UpdateRoomType(ctx context.Context, id uint, req dto.RoomTypeRequest) (*models.RoomType, error) {
	if err := validatePrice(req.PricePerNight); err != nil {
		return nil, err
	}
	rt, err := s.roomTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRoomType(rt, req)
	if err := s.roomTypes.Update(ctx, rt); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "room type %d updated", id)
	return rt, nil
}

func (s *CatalogService) DeleteRoomType(ctx context.Context, id uint) error {
	if err := s.roomTypes.Delete(ctx, id); err != nil {
		return err
	}
	s.catalogChanged(ctx, "room type %d deleted", id)
	return nil
}

func (s *CatalogService) CreateRoom(ctx context.Context, req dto.RoomRequest) (*models.Room, error) {
	if err := s.checkRoomRefs(ctx, req); err != nil {
		return nil, err
	}
	room := &models.Room{IsAvailable: true}
	applyRoom(room, req)
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "room %s created", room.RoomNumber)
	return s.rooms.FindByID(ctx, room.ID)
}

func (s *CatalogService) UpdateRoom(ctx context.Context, id uint, req dto.RoomRequest) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoomRefs(ctx, req); err != nil {
		return nil, err
	}
	applyRoom(room, req)
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "room %d updated", id)
	return s.rooms.FindByID(ctx, id)
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id uint) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	s.catalogChanged(ctx, "room %d deleted", id)
	return nil
}

// SetRoomAvailability takes a room in or out of service
func (s *CatalogService) SetRoomAvailability(ctx context.Context, id uint, available bool) (*models.Room, error) {
	if err := s.rooms.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "room %d in service: %v", id, available)
	return s.rooms.FindByID(ctx, id)
}

// UploadImage stores a catalog image and returns its public URL
func (s *CatalogService) UploadImage(ctx context.Context, filename string, r io.Reader, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidFile, "Only image files can be uploaded", nil)
	}
	url, err := s.media.Upload(ctx, FolderImages, filename, r, contentType)
	if err != nil {
		return "", err
	}
	s.log.Info("image uploaded: %s", url)
	return url, nil
}

func (s *CatalogService) checkRoomRefs(ctx context.Context, req dto.RoomRequest) error {
	if _, err := s.cities.FindByID(ctx, req.CityID); err != nil {
		return err
	}
	if _, err := s.roomTypes.FindByID(ctx, req.RoomTypeID); err != nil {
		return err
	}
	return nil
}

func (s *CatalogService) catalogChanged(ctx context.Context, format string, v ...interface{}) {
	s.log.Info(format, v...)
	s.availability.InvalidateSummaries(ctx)
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return apperrors.NewValidationError("Please correct the highlighted fields", map[string]string{
			"pricePerNight": "Must be greater than 0",
		})
	}
	return nil
}

func applyCity(city *models.City, req dto.CityRequest) {
	city.Name = strings.TrimSpace(req.Name)
	city.Description = req.Description
	city.Image = req.Image
	if req.IsActive != nil {
		city.IsActive = *req.IsActive
	}
}

func applyRoomType(rt *models.RoomType, req dto.RoomTypeRequest) {
	rt.Name = strings.TrimSpace(req.Name)
	rt.Description = req.Description
	rt.PricePerNight = req.PricePerNight.Round(2)
	rt.Capacity = req.Capacity
	rt.Image = req.Image
}

func applyRoom(room *models.Room, req dto.RoomRequest) {
	room.RoomNumber = strings.TrimSpace(req.RoomNumber)
	room.CityID = req.CityID
	room.RoomTypeID = req.RoomTypeID
	room.ViewType = req.ViewType
	room.Image = req.Image
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	// associations are reloaded after the write
	room.City = models.City{}
	room.RoomType = models.RoomType{}
}
