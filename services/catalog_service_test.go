package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"abchotels/dto"
	apperrors "abchotels/errors"
	"abchotels/services/logger"

	"github.com/shopspring/decimal"
)

// fakeMedia records uploads instead of storing them
type fakeMedia struct {
	folders []string
	bodies  []string
	deleted []string
	err     error
}

func (m *fakeMedia) Upload(_ context.Context, folder, filename string, r io.Reader, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	body, _ := io.ReadAll(r)
	m.folders = append(m.folders, folder)
	m.bodies = append(m.bodies, string(body))
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

func (m *fakeMedia) Delete(_ context.Context, fileURL string) error {
	m.deleted = append(m.deleted, fileURL)
	return nil
}

func newTestCatalogService(s *memStore, cache Cache, media MediaStore) *CatalogService {
	availability := newTestAvailabilityService(s, cache)
	return NewCatalogService(memCityRepo{s}, memRoomTypeRepo{s}, memRoomRepo{s}, availability, media, logger.Nop{})
}

func TestCityDetail(t *testing.T) {
	svc := newTestCatalogService(hotelFixture(), NoopCache{}, &fakeMedia{})
	ctx := context.Background()

	detail, err := svc.CityDetail(ctx, 1, AvailabilityQuery{})
	if err != nil {
		t.Fatalf("CityDetail: %v", err)
	}
	if detail.City.Name != "Paris" || len(detail.RoomTypes) != 3 {
		t.Errorf("got %s with %d room types", detail.City.Name, len(detail.RoomTypes))
	}
	if detail.StartingPrice == nil || detail.StartingPrice.StringFixed(2) != "149.00" {
		t.Errorf("starting price = %v", detail.StartingPrice)
	}
	if len(detail.OtherCities) != 1 || detail.OtherCities[0].Name != "London" {
		t.Errorf("other cities = %+v", detail.OtherCities)
	}

	if _, err := svc.CityDetail(ctx, 3, AvailabilityQuery{}); !apperrors.HasCode(err, apperrors.ErrCodeDBNotFound) {
		t.Errorf("inactive city should be not found, got %v", err)
	}
}

func TestRoomTypeDetail(t *testing.T) {
	svc := newTestCatalogService(hotelFixture(), NoopCache{}, &fakeMedia{})

	detail, err := svc.RoomTypeDetail(context.Background(), 3, AvailabilityQuery{})
	if err != nil {
		t.Fatalf("RoomTypeDetail: %v", err)
	}
	// L301 shares the type but is out of service
	if len(detail.AvailableRooms) != 1 || detail.AvailableRooms[0].RoomNumber != "P203" {
		t.Errorf("available rooms = %+v", detail.AvailableRooms)
	}
	for _, rt := range detail.Similar {
		if rt.ID == 3 {
			t.Error("reference type must not be similar to itself")
		}
	}
}

func TestSearchCities_OnlyActive(t *testing.T) {
	svc := newTestCatalogService(hotelFixture(), NoopCache{}, &fakeMedia{})

	hits, err := svc.SearchCities(context.Background(), "atlantis")
	if err != nil {
		t.Fatalf("SearchCities: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("inactive cities must not be found, got %+v", hits)
	}

	hits, _ = svc.SearchCities(context.Background(), "pari")
	if len(hits) == 0 || hits[0].City.Name != "Paris" {
		t.Errorf("got %+v", hits)
	}
}

func TestCatalogWrites_InvalidateSummaries(t *testing.T) {
	s := hotelFixture()
	cache := newCountingCache()
	svc := newTestCatalogService(s, cache, &fakeMedia{})
	ctx := context.Background()

	if _, err := svc.ListCities(ctx); err != nil {
		t.Fatalf("ListCities: %v", err)
	}
	if _, ok := cache.data["cities:summaries"]; !ok {
		t.Fatal("summaries should be cached")
	}

	off := false
	if _, err := svc.SetRoomAvailability(ctx, 2, off); err != nil {
		t.Fatalf("SetRoomAvailability: %v", err)
	}
	if _, ok := cache.data["cities:summaries"]; ok {
		t.Error("a catalog write must invalidate the summaries")
	}

	summaries, _ := svc.ListCities(ctx)
	if summaries[1].StartingPrice.StringFixed(2) != "199.00" {
		t.Errorf("with P201 out of service Paris should start at 199.00, got %s", summaries[1].StartingPrice)
	}
}

func TestCreateRoomType_RejectsNonPositivePrice(t *testing.T) {
	svc := newTestCatalogService(hotelFixture(), NoopCache{}, &fakeMedia{})

	for _, price := range []string{"0", "-10.00"} {
		_, err := svc.CreateRoomType(context.Background(), dto.RoomTypeRequest{
			Name:          "Broom Closet",
			PricePerNight: decimal.RequireFromString(price),
			Capacity:      1,
		})
		appErr := apperrors.GetAppError(err)
		if appErr == nil || appErr.Code != apperrors.ErrCodeValidation || appErr.Fields["pricePerNight"] == "" {
			t.Errorf("price %s: expected field validation error, got %v", price, err)
		}
	}
}

func TestCreateRoom_ChecksReferences(t *testing.T) {
	s := hotelFixture()
	svc := newTestCatalogService(s, NoopCache{}, &fakeMedia{})
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, dto.RoomRequest{RoomNumber: "X1", CityID: 99, RoomTypeID: 1})
	if !apperrors.HasCode(err, apperrors.ErrCodeDBNotFound) {
		t.Fatalf("unknown city should be not found, got %v", err)
	}

	room, err := svc.CreateRoom(ctx, dto.RoomRequest{RoomNumber: " P204 ", CityID: 1, RoomTypeID: 2})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.RoomNumber != "P204" || !room.IsAvailable || room.RoomType.Name != "Classic Double" {
		t.Errorf("got %+v", room)
	}
}

func TestUploadImage(t *testing.T) {
	media := &fakeMedia{}
	svc := newTestCatalogService(hotelFixture(), NoopCache{}, media)
	ctx := context.Background()

	url, err := svc.UploadImage(ctx, "lobby.jpg", strings.NewReader("jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if !strings.HasSuffix(url, "/images/lobby.jpg") || media.bodies[0] != "jpeg" {
		t.Errorf("url = %s, bodies = %v", url, media.bodies)
	}

	if _, err := svc.UploadImage(ctx, "notes.txt", strings.NewReader("x"), "text/plain"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidFile) {
		t.Errorf("expected INVALID_FILE, got %v", err)
	}
}
