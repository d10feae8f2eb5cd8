package commands

import (
	"context"
	"fmt"
	"io/fs"

	"abchotels/services/logger"
)

// ImportResult counts the rows written per file
type ImportResult struct {
	Cities      int
	RoomTypes   int
	Rooms       int
	Departments int
	Jobs        int
	FAQs        int
}

// ImportCommand upserts catalog and careers data from CSV files.
// Files are loaded parents first so rooms and jobs can resolve their references by name.
type ImportCommand struct {
	fsys   fs.FS
	repos  Repositories
	log    logger.Logger
	Result ImportResult
}

func NewImportCommand(fsys fs.FS, repos Repositories, log logger.Logger) *ImportCommand {
	return &ImportCommand{fsys: fsys, repos: repos, log: log}
}

func (c *ImportCommand) Execute(ctx context.Context) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{CitiesFile, c.importCities},
		{RoomTypesFile, c.importRoomTypes},
		{RoomsFile, c.importRooms},
		{DepartmentsFile, c.importDepartments},
		{JobsFile, c.importJobs},
		{FAQsFile, c.importFAQs},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return err
		}
	}
	c.log.Info("import done: %d cities, %d room types, %d rooms, %d departments, %d jobs, %d faqs",
		c.Result.Cities, c.Result.RoomTypes, c.Result.Rooms, c.Result.Departments, c.Result.Jobs, c.Result.FAQs)
	return nil
}

func (c *ImportCommand) importCities(ctx context.Context) error {
	rows, err := readRows(c.fsys, CitiesFile, cityHeader[:1])
	if err != nil {
		return err
	}
	for _, r := range rows {
		city, err := cityFromRow(r)
		if err != nil {
			return rowError(CitiesFile, r, err)
		}
		if err := c.repos.Cities.Upsert(ctx, &city); err != nil {
			return rowError(CitiesFile, r, err)
		}
		c.Result.Cities++
	}
	return nil
}

func (c *ImportCommand) importRoomTypes(ctx context.Context) error {
	rows, err := readRows(c.fsys, RoomTypesFile, roomTypeHeader)
	if err != nil {
		return err
	}
	for _, r := range rows {
		rt, err := roomTypeFromRow(r)
		if err != nil {
			return rowError(RoomTypesFile, r, err)
		}
		if err := c.repos.RoomTypes.Upsert(ctx, &rt); err != nil {
			return rowError(RoomTypesFile, r, err)
		}
		c.Result.RoomTypes++
	}
	return nil
}

func (c *ImportCommand) importRooms(ctx context.Context) error {
	rows, err := readRows(c.fsys, RoomsFile, roomHeader[:3])
	if err != nil {
		return err
	}
	for _, r := range rows {
		rec, err := roomFromRow(r)
		if err != nil {
			return rowError(RoomsFile, r, err)
		}
		city, err := c.repos.Cities.FindByName(ctx, rec.City)
		if err != nil {
			return rowError(RoomsFile, r, fmt.Errorf("city %q: %w", rec.City, err))
		}
		rt, err := c.repos.RoomTypes.FindByName(ctx, rec.RoomType)
		if err != nil {
			return rowError(RoomsFile, r, fmt.Errorf("room type %q: %w", rec.RoomType, err))
		}
		room := rec.Room
		room.CityID = city.ID
		room.RoomTypeID = rt.ID
		if err := c.repos.Rooms.Upsert(ctx, &room); err != nil {
			return rowError(RoomsFile, r, err)
		}
		c.Result.Rooms++
	}
	return nil
}

func (c *ImportCommand) importDepartments(ctx context.Context) error {
	rows, err := readRows(c.fsys, DepartmentsFile, departmentHeader[:1])
	if err != nil {
		return err
	}
	for _, r := range rows {
		dept, err := departmentFromRow(r)
		if err != nil {
			return rowError(DepartmentsFile, r, err)
		}
		if err := c.repos.Careers.UpsertDepartment(ctx, &dept); err != nil {
			return rowError(DepartmentsFile, r, err)
		}
		c.Result.Departments++
	}
	return nil
}

func (c *ImportCommand) importJobs(ctx context.Context) error {
	rows, err := readRows(c.fsys, JobsFile, jobHeader[:4])
	if err != nil {
		return err
	}
	for _, r := range rows {
		rec, err := jobFromRow(r)
		if err != nil {
			return rowError(JobsFile, r, err)
		}
		dept, err := c.repos.Careers.FindDepartmentByName(ctx, rec.Department)
		if err != nil {
			return rowError(JobsFile, r, fmt.Errorf("department %q: %w", rec.Department, err))
		}
		job := rec.Job
		job.DepartmentID = dept.ID
		if existing, err := c.repos.Careers.FindJobByTitle(ctx, dept.ID, job.Title); err == nil {
			job.ID = existing.ID
			job.PostedDate = existing.PostedDate
		}
		if err := c.repos.Careers.SaveJob(ctx, &job); err != nil {
			return rowError(JobsFile, r, err)
		}
		c.Result.Jobs++
	}
	return nil
}

// importFAQs only loads into an empty FAQ table; questions have no natural key
func (c *ImportCommand) importFAQs(ctx context.Context) error {
	rows, err := readRows(c.fsys, FAQsFile, faqHeader[1:3])
	if err != nil || len(rows) == 0 {
		return err
	}
	count, err := c.repos.Content.CountFAQs(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		c.log.Info("faqs already present, skipping %s", FAQsFile)
		return nil
	}
	for _, r := range rows {
		faq, err := faqFromRow(r)
		if err != nil {
			return rowError(FAQsFile, r, err)
		}
		if err := c.repos.Content.CreateFAQ(ctx, &faq); err != nil {
			return rowError(FAQsFile, r, err)
		}
		c.Result.FAQs++
	}
	return nil
}
