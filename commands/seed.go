package commands

import (
	"embed"
	"io/fs"

	"abchotels/services/logger"
)

//go:embed seed/*.csv
var seedFiles embed.FS

// SeedFS is the bundled sample data in the same CSV layout import reads
func SeedFS() fs.FS {
	sub, err := fs.Sub(seedFiles, "seed")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewSeedCommand imports the bundled sample catalog, careers and FAQ data
func NewSeedCommand(repos Repositories, log logger.Logger) *ImportCommand {
	return NewImportCommand(SeedFS(), repos, log)
}
