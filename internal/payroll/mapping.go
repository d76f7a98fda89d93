package payroll

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Default mapping file names. The earnings map translates upstream earning
// codes to human labels; the category map groups codes into reporting
// categories for the downstream consumer.
const (
	DefaultEarningsMapFile = "earnings_ukg.json"
	DefaultCategoryMapFile = "earnings_to_aon.json"
)

// LoadMapping resolves a JSON string-to-string mapping file by searching
// the working directory, its payroll subdirectory, the executable's
// directory and its payroll subdirectory, in that order. A file that exists
// nowhere yields an empty mapping, not an error; a candidate that exists
// but does not parse is a configuration error.
func LoadMapping(filename string) (map[string]string, error) {
	return loadMapping(candidateDirs(), filename)
}

func loadMapping(dirs []string, filename string) (map[string]string, error) {
	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read mapping file %s: %w", path, err)
		}

		mapping := make(map[string]string)
		if err := json.Unmarshal(data, &mapping); err != nil {
			return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
		}
		return mapping, nil
	}
	return map[string]string{}, nil
}

func candidateDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd, filepath.Join(cwd, "payroll"))
	}
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		dirs = append(dirs, exeDir, filepath.Join(exeDir, "payroll"))
	}
	return dirs
}
