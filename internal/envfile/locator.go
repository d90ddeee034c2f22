package envfile

import (
	"os"
	"path/filepath"
)

// DefaultName is the credential file name the locator searches for.
const DefaultName = ".env"

// Locate returns the absolute path of the nearest .env file, walking from
// startDir up to the filesystem root. If no file exists anywhere on the
// walk, the conventional path <startDir>/.env is returned: a missing file is
// not an error, because lookups can still succeed against the process
// environment.
func Locate(startDir string) (string, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := start
	for {
		candidate := filepath.Join(dir, DefaultName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Filesystem root reached.
			break
		}
		dir = parent
	}

	return filepath.Join(start, DefaultName), nil
}

// LocateFromWorkingDir is Locate starting at the process working directory.
func LocateFromWorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return Locate(cwd)
}
