package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"

	"github.com/shopspring/decimal"
)

type memCities struct {
	repository.CityRepository
	byName map[string]models.City
}

func (m *memCities) Upsert(_ context.Context, c *models.City) error {
	if existing, ok := m.byName[c.Name]; ok {
		c.ID = existing.ID
	} else {
		c.ID = uint(len(m.byName) + 1)
	}
	m.byName[c.Name] = *c
	return nil
}

func (m *memCities) FindByName(_ context.Context, name string) (*models.City, error) {
	c, ok := m.byName[name]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrCityNotFound)
	}
	return &c, nil
}

type memRoomTypes struct {
	repository.RoomTypeRepository
	byName map[string]models.RoomType
}

func (m *memRoomTypes) Upsert(_ context.Context, rt *models.RoomType) error {
	if existing, ok := m.byName[rt.Name]; ok {
		rt.ID = existing.ID
	} else {
		rt.ID = uint(len(m.byName) + 1)
	}
	m.byName[rt.Name] = *rt
	return nil
}

func (m *memRoomTypes) FindByName(_ context.Context, name string) (*models.RoomType, error) {
	rt, ok := m.byName[name]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrRoomTypeNotFound)
	}
	return &rt, nil
}

type memRooms struct {
	repository.RoomRepository
	byNumber map[string]models.Room
}

func (m *memRooms) Upsert(_ context.Context, r *models.Room) error {
	m.byNumber[r.RoomNumber] = *r
	return nil
}

type memCareers struct {
	repository.CareersRepository
	depts map[string]models.Department
	jobs  []models.JobListing
}

func (m *memCareers) UpsertDepartment(_ context.Context, d *models.Department) error {
	if existing, ok := m.depts[d.Name]; ok {
		d.ID = existing.ID
	} else {
		d.ID = uint(len(m.depts) + 1)
	}
	m.depts[d.Name] = *d
	return nil
}

func (m *memCareers) FindDepartmentByName(_ context.Context, name string) (*models.Department, error) {
	d, ok := m.depts[name]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrDepartmentNotFound)
	}
	return &d, nil
}

func (m *memCareers) FindJobByTitle(_ context.Context, deptID uint, title string) (*models.JobListing, error) {
	for _, j := range m.jobs {
		if j.DepartmentID == deptID && j.Title == title {
			j := j
			return &j, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrJobNotFound)
}

func (m *memCareers) SaveJob(_ context.Context, job *models.JobListing) error {
	if job.ID != 0 {
		for i := range m.jobs {
			if m.jobs[i].ID == job.ID {
				m.jobs[i] = *job
				return nil
			}
		}
	}
	job.ID = uint(len(m.jobs) + 1)
	m.jobs = append(m.jobs, *job)
	return nil
}

type memContent struct {
	repository.ContentRepository
	faqs []models.FAQ
}

func (m *memContent) CountFAQs(context.Context) (int64, error) { return int64(len(m.faqs)), nil }

func (m *memContent) CreateFAQ(_ context.Context, f *models.FAQ) error {
	m.faqs = append(m.faqs, *f)
	return nil
}

func newRepos() (Repositories, *memRooms, *memCareers, *memContent) {
	rooms := &memRooms{byNumber: map[string]models.Room{}}
	careers := &memCareers{depts: map[string]models.Department{}}
	content := &memContent{}
	return Repositories{
		Cities:    &memCities{byName: map[string]models.City{}},
		RoomTypes: &memRoomTypes{byName: map[string]models.RoomType{}},
		Rooms:     rooms,
		Careers:   careers,
		Content:   content,
	}, rooms, careers, content
}

func TestParseRows(t *testing.T) {
	input := "\ufeffName, Description ,is_active\nParis,\"Cafes, museums\",yes\nRome,,\n"
	rows, err := parseRows(strings.NewReader(input), CitiesFile, cityHeader[:1])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].get("description") != "Cafes, museums" || rows[1].line != 3 {
		t.Errorf("rows = %+v", rows)
	}

	if _, err := parseRows(strings.NewReader("title\nx\n"), CitiesFile, cityHeader[:1]); err == nil {
		t.Error("missing name column should fail")
	}
}

func TestRoomTypeFromRow(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr bool
	}{
		{"valid", map[string]string{"name": "Standard King", "price_per_night": "$159", "capacity": "2"}, false},
		{"zero price", map[string]string{"name": "Free", "price_per_night": "0", "capacity": "2"}, true},
		{"bad capacity", map[string]string{"name": "Odd", "price_per_night": "100", "capacity": "two"}, true},
		{"no name", map[string]string{"price_per_night": "100", "capacity": "2"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := roomTypeFromRow(row{line: 2, values: tt.values})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !rt.PricePerNight.Equal(decimal.RequireFromString("159.00")) {
				t.Errorf("price = %s", rt.PricePerNight)
			}
		})
	}
}

func TestImportResolvesReferences(t *testing.T) {
	fsys := fstest.MapFS{
		CitiesFile:    {Data: []byte("name,description,is_active\nParis,,true\n")},
		RoomTypesFile: {Data: []byte("name,description,price_per_night,capacity\nClassic Queen,,149.00,2\n")},
		RoomsFile:     {Data: []byte("room_number,city,room_type,is_available,view_type\nPA101,Paris,Classic Queen,false,Courtyard\n")},
	}
	repos, rooms, _, _ := newRepos()

	cmd := NewImportCommand(fsys, repos, logger.Nop{})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}
	room, ok := rooms.byNumber["PA101"]
	if !ok || room.CityID == 0 || room.RoomTypeID == 0 || room.IsAvailable {
		t.Errorf("room = %+v", room)
	}
	if cmd.Result.Rooms != 1 || cmd.Result.Jobs != 0 {
		t.Errorf("result = %+v", cmd.Result)
	}
}

func TestImportUnknownCity(t *testing.T) {
	fsys := fstest.MapFS{
		RoomsFile: {Data: []byte("room_number,city,room_type\nX1,Atlantis,Standard King\n")},
	}
	repos, _, _, _ := newRepos()

	err := NewImportCommand(fsys, repos, logger.Nop{}).Execute(context.Background())
	if err == nil || !strings.Contains(err.Error(), "rooms.csv line 2") || !strings.Contains(err.Error(), "Atlantis") {
		t.Errorf("err = %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repos, rooms, careers, content := newRepos()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := NewSeedCommand(repos, logger.Nop{}).Execute(ctx); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	if len(rooms.byNumber) != 20 {
		t.Errorf("rooms = %d, want 20", len(rooms.byNumber))
	}
	if len(careers.jobs) != 8 {
		t.Errorf("jobs = %d, want 8 (jobs must upsert by title)", len(careers.jobs))
	}
	if len(content.faqs) != 11 {
		t.Errorf("faqs = %d, want 11 (second run must skip)", len(content.faqs))
	}
	r101 := rooms.byNumber["R101"]
	rt, _ := repos.RoomTypes.FindByName(ctx, "Standard King")
	if r101.RoomTypeID != rt.ID || !rt.PricePerNight.Equal(decimal.NewFromInt(159)) {
		t.Errorf("R101 = %+v, type %+v", r101, rt)
	}
}

func TestExportRecordsReimport(t *testing.T) {
	rooms := []models.Room{{
		RoomNumber:  "R101",
		IsAvailable: true,
		ViewType:    "City",
		City:        models.City{Name: "New York"},
		RoomType:    models.RoomType{Name: "Standard King"},
	}}

	var buf bytes.Buffer
	if err := writeCSV(&buf, roomHeader, roomRecords(rooms)); err != nil {
		t.Fatal(err)
	}
	parsed, err := parseRows(&buf, RoomsFile, roomHeader)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := roomFromRow(parsed[0])
	if err != nil {
		t.Fatal(err)
	}
	if rec.City != "New York" || rec.RoomType != "Standard King" || !rec.Room.IsAvailable {
		t.Errorf("record = %+v", rec)
	}
}
