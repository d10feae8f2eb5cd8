package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"
)

// ExportCommand writes the catalog and careers tables as CSV files the import command accepts
type ExportCommand struct {
	dir   string
	repos Repositories
	log   logger.Logger
}

func NewExportCommand(dir string, repos Repositories, log logger.Logger) *ExportCommand {
	return &ExportCommand{dir: dir, repos: repos, log: log}
}

func (c *ExportCommand) Execute(ctx context.Context) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", c.dir, err)
	}

	cities, err := c.repos.Cities.List(ctx, false)
	if err != nil {
		return err
	}
	roomTypes, err := c.repos.RoomTypes.List(ctx, repository.RoomTypeFilter{})
	if err != nil {
		return err
	}
	rooms, err := c.repos.Rooms.ListAll(ctx)
	if err != nil {
		return err
	}
	depts, err := c.repos.Careers.ListDepartments(ctx)
	if err != nil {
		return err
	}
	jobs, err := c.repos.Careers.ListJobs(ctx, repository.JobFilter{IncludeInactive: true})
	if err != nil {
		return err
	}

	files := []struct {
		name    string
		header  []string
		records [][]string
	}{
		{CitiesFile, cityHeader, cityRecords(cities)},
		{RoomTypesFile, roomTypeHeader, roomTypeRecords(roomTypes)},
		{RoomsFile, roomHeader, roomRecords(rooms)},
		{DepartmentsFile, departmentHeader, departmentRecords(depts)},
		{JobsFile, jobHeader, jobRecords(jobs)},
	}
	for _, f := range files {
		if err := c.writeFile(f.name, f.header, f.records); err != nil {
			return err
		}
		c.log.Info("exported %d rows to %s", len(f.records), filepath.Join(c.dir, f.name))
	}
	return nil
}

func (c *ExportCommand) writeFile(name string, header []string, records [][]string) error {
	f, err := os.Create(filepath.Join(c.dir, name))
	if err != nil {
		return err
	}
	if err := writeCSV(f, header, records); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func cityRecords(cities []models.City) [][]string {
	out := make([][]string, 0, len(cities))
	for _, c := range cities {
		out = append(out, []string{c.Name, c.Description, strconv.FormatBool(c.IsActive)})
	}
	return out
}

func roomTypeRecords(types []models.RoomType) [][]string {
	out := make([][]string, 0, len(types))
	for _, rt := range types {
		out = append(out, []string{rt.Name, rt.Description, rt.PricePerNight.StringFixed(2), strconv.Itoa(rt.Capacity)})
	}
	return out
}

func roomRecords(rooms []models.Room) [][]string {
	out := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, []string{r.RoomNumber, r.City.Name, r.RoomType.Name, strconv.FormatBool(r.IsAvailable), r.ViewType})
	}
	return out
}

func departmentRecords(depts []models.Department) [][]string {
	out := make([][]string, 0, len(depts))
	for _, d := range depts {
		out = append(out, []string{d.Name, d.Description})
	}
	return out
}

func jobRecords(jobs []models.JobListing) [][]string {
	out := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, []string{
			j.Title, j.Department.Name, j.JobType, j.ExperienceLevel, j.Location,
			j.SalaryRange, j.Description, j.Requirements, j.Responsibilities,
		})
	}
	return out
}
