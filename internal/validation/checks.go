package validation

import (
	"errors"
	"fmt"
	"os"
)

// CheckFileReadable verifies path names a regular file the process can open.
func CheckFileReadable(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s does not exist", path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
