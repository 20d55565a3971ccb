package file

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultDotEnv is the env file read from the working directory.
const DefaultDotEnv = ".env"

// LoadDotEnv loads variables from an env file into the process environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultDotEnv
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
