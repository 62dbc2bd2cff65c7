// Package highscore persists the single best score in a plain text file,
// one decimal integer, as the classic 2048 terminal game did.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultPath is where the highscore lives when no path is configured.
const DefaultPath = "~/.2048/highscore"

// ErrCorrupt is returned when the file does not hold a valid score.
var ErrCorrupt = errors.New("highscore: corrupt file")

// File stores the highscore at Path.
// It is safe for concurrent use by SSH sessions sharing one file.
type File struct {
	Path string

	mu sync.Mutex
}

// NewFile returns a store for path, expanding a leading ~.
func NewFile(path string) (*File, error) {
	if path == "" {
		path = DefaultPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("highscore: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &File{Path: path}, nil
}

// LoadHighscore reads the stored score. A missing file reads as 0.
func (f *File) LoadHighscore() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() (int, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read %s: %w", f.Path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s: %q", ErrCorrupt, f.Path, text)
	}
	return value, nil
}

// SaveHighscore writes value unless the file already holds a higher one.
// The file is replaced atomically via a temp file and rename.
func (f *File) SaveHighscore(value int) error {
	if value < 0 {
		return fmt.Errorf("highscore: negative score %d", value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// A corrupt file is overwritten rather than blocking every save.
	if current, err := f.load(); err == nil && current >= value {
		return nil
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("highscore: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := fmt.Fprintf(tmp, "%d\n", value); err != nil {
		tmp.Close()
		return fmt.Errorf("highscore: cannot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore: cannot write: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("highscore: cannot replace %s: %w", f.Path, err)
	}
	return nil
}
