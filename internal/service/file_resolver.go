package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is read when the caller does not name a file.
const DefaultFileName = "1.xlsx"

// ErrFileNotFound reports a spreadsheet that does not exist under the base
// directory.
var ErrFileNotFound = errors.New("file not found")

// FileResolver maps caller supplied file names onto paths below baseDir.
type FileResolver struct {
	baseDir string
}

func NewFileResolver(baseDir string) *FileResolver {
	return &FileResolver{baseDir: filepath.Clean(baseDir)}
}

// Resolve joins name with the base directory and checks that the result
// exists. Names that would leave the base directory are treated as missing.
func (r *FileResolver) Resolve(name string) (string, error) {
	if name == "" {
		name = DefaultFileName
	}

	path := filepath.Join(r.baseDir, name)
	rel, err := filepath.Rel(r.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	// Every stat failure counts as a missing file.
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return path, nil
}
