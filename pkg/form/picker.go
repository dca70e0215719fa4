package form

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Picker asks the user for a path. ok is false when the user dismissed the
// picker without choosing anything; that is not an error.
type Picker interface {
	PickDirectory(ctx context.Context, start string) (path string, ok bool, err error)
	PickFile(ctx context.Context, start string) (path string, ok bool, err error)
}

// StartDir resolves where a picker should open for the current value: the
// value itself when it names a folder, its parent when it names a file, else
// the working directory. "~" is expanded.
func StartDir(value string) string {
	if expanded := expandPath(value); expanded != "" {
		if isDir(expanded) {
			return filepath.Clean(expanded)
		}
		if parent := filepath.Dir(expanded); isDir(parent) {
			return filepath.Clean(parent)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	if home, err := homedir.Dir(); err == nil {
		return home
	}
	return string(filepath.Separator)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
