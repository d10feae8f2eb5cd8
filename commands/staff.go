package commands

import (
	"context"

	"abchotels/dto"
	"abchotels/models"
	"abchotels/services/logger"
)

// StaffCreator creates staff accounts; the auth service satisfies it
type StaffCreator interface {
	CreateStaff(ctx context.Context, in dto.CreateStaffInput) (*models.User, error)
}

// CreateStaffCommand bootstraps an account from the command line
type CreateStaffCommand struct {
	creator StaffCreator
	input   dto.CreateStaffInput
	log     logger.Logger
}

func NewCreateStaffCommand(creator StaffCreator, input dto.CreateStaffInput, log logger.Logger) *CreateStaffCommand {
	return &CreateStaffCommand{creator: creator, input: input, log: log}
}

func (c *CreateStaffCommand) Execute(ctx context.Context) error {
	user, err := c.creator.CreateStaff(ctx, c.input)
	if err != nil {
		return err
	}
	c.log.Info("created user %d (%s) with role %d", user.ID, user.Email, user.Role)
	return nil
}
