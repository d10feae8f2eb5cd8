package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"abchotels/constants"
	"abchotels/models"

	"github.com/shopspring/decimal"
)

// CSV file names and their header rows
const (
	CitiesFile      = "cities.csv"
	RoomTypesFile   = "room_types.csv"
	RoomsFile       = "rooms.csv"
	DepartmentsFile = "departments.csv"
	JobsFile        = "jobs.csv"
	FAQsFile        = "faqs.csv"
)

var (
	cityHeader       = []string{"name", "description", "is_active"}
	roomTypeHeader   = []string{"name", "description", "price_per_night", "capacity"}
	roomHeader       = []string{"room_number", "city", "room_type", "is_available", "view_type"}
	departmentHeader = []string{"name", "description"}
	jobHeader        = []string{"title", "department", "job_type", "experience_level", "location", "salary_range", "description", "requirements", "responsibilities"}
	faqHeader        = []string{"category", "question", "answer", "order"}
)

// row is one CSV record keyed by its header
type row struct {
	line   int
	values map[string]string
}

func (r row) get(key string) string {
	return strings.TrimSpace(r.values[key])
}

// readRows parses a headed CSV file. A missing file yields no rows and no error.
func readRows(fsys fs.FS, name string, required []string) ([]row, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return parseRows(f, name, required)
}

func parseRows(r io.Reader, name string, required []string) ([]row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
	}
	for _, col := range required {
		if !contains(header, col) {
			return nil, fmt.Errorf("%s: missing column %q", name, col)
		}
	}

	var rows []row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				values[col] = record[i]
			}
		}
		rows = append(rows, row{line: line, values: values})
	}
	return rows, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// parseBool reads yes/no style flags; blank means def
func parseBool(raw string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def, nil
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", raw)
}

func rowError(file string, r row, err error) error {
	return fmt.Errorf("%s line %d: %w", file, r.line, err)
}

func cityFromRow(r row) (models.City, error) {
	active, err := parseBool(r.get("is_active"), true)
	if err != nil {
		return models.City{}, err
	}
	if r.get("name") == "" {
		return models.City{}, errors.New("name is required")
	}
	return models.City{Name: r.get("name"), Description: r.get("description"), IsActive: active}, nil
}

func roomTypeFromRow(r row) (models.RoomType, error) {
	if r.get("name") == "" {
		return models.RoomType{}, errors.New("name is required")
	}
	price, err := decimal.NewFromString(strings.TrimPrefix(r.get("price_per_night"), "$"))
	if err != nil || !price.IsPositive() {
		return models.RoomType{}, fmt.Errorf("invalid price_per_night %q", r.get("price_per_night"))
	}
	capacity, err := strconv.Atoi(r.get("capacity"))
	if err != nil || capacity < 1 {
		return models.RoomType{}, fmt.Errorf("invalid capacity %q", r.get("capacity"))
	}
	return models.RoomType{
		Name:          r.get("name"),
		Description:   r.get("description"),
		PricePerNight: price.Round(2),
		Capacity:      capacity,
	}, nil
}

// roomRecord is a room row before its city and room type names are resolved
type roomRecord struct {
	Room     models.Room
	City     string
	RoomType string
}

func roomFromRow(r row) (roomRecord, error) {
	if r.get("room_number") == "" || r.get("city") == "" || r.get("room_type") == "" {
		return roomRecord{}, errors.New("room_number, city and room_type are required")
	}
	available, err := parseBool(r.get("is_available"), true)
	if err != nil {
		return roomRecord{}, err
	}
	return roomRecord{
		Room: models.Room{
			RoomNumber:  r.get("room_number"),
			IsAvailable: available,
			ViewType:    r.get("view_type"),
		},
		City:     r.get("city"),
		RoomType: r.get("room_type"),
	}, nil
}

func departmentFromRow(r row) (models.Department, error) {
	if r.get("name") == "" {
		return models.Department{}, errors.New("name is required")
	}
	return models.Department{Name: r.get("name"), Description: r.get("description")}, nil
}

// jobRecord is a job row before its department name is resolved
type jobRecord struct {
	Job        models.JobListing
	Department string
}

func jobFromRow(r row) (jobRecord, error) {
	if r.get("title") == "" || r.get("department") == "" {
		return jobRecord{}, errors.New("title and department are required")
	}
	if !contains(constants.JobTypes, r.get("job_type")) {
		return jobRecord{}, fmt.Errorf("unknown job_type %q", r.get("job_type"))
	}
	if !contains(constants.ExperienceLevels, r.get("experience_level")) {
		return jobRecord{}, fmt.Errorf("unknown experience_level %q", r.get("experience_level"))
	}
	return jobRecord{
		Job: models.JobListing{
			Title:            r.get("title"),
			JobType:          r.get("job_type"),
			ExperienceLevel:  r.get("experience_level"),
			Location:         r.get("location"),
			SalaryRange:      r.get("salary_range"),
			Description:      r.get("description"),
			Requirements:     r.get("requirements"),
			Responsibilities: r.get("responsibilities"),
			IsActive:         true,
		},
		Department: r.get("department"),
	}, nil
}

func faqFromRow(r row) (models.FAQ, error) {
	if r.get("question") == "" {
		return models.FAQ{}, errors.New("question is required")
	}
	order, _ := strconv.Atoi(r.get("order"))
	return models.FAQ{
		Category: r.get("category"),
		Question: r.get("question"),
		Answer:   r.get("answer"),
		Order:    order,
		IsActive: true,
	}, nil
}
