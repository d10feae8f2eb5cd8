package commands

import (
	"context"

	"abchotels/repository"
	"abchotels/services/logger"
)

// Command is one unit of CLI work run against the database
type Command interface {
	Execute(ctx context.Context) error
}

// Repositories are the stores the data commands read and write
type Repositories struct {
	Cities    repository.CityRepository
	RoomTypes repository.RoomTypeRepository
	Rooms     repository.RoomRepository
	Careers   repository.CareersRepository
	Content   repository.ContentRepository
}

// Run executes each command in order and stops at the first failure
func Run(ctx context.Context, log logger.Logger, cmds ...Command) error {
	for _, cmd := range cmds {
		if err := cmd.Execute(ctx); err != nil {
			log.Error("command failed: %v", err)
			return err
		}
	}
	return nil
}
