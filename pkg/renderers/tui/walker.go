package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-argform/pkg/form"
)

const (
	walkUseFolder = "✔ Use this folder"
	walkParent    = ".."
	walkCancel    = "✖ Cancel"
)

// Walker implements form.Picker by stepping through directories with select
// prompts. Interrupting a prompt dismisses the picker.
type Walker struct {
	driver     PromptDriver
	showHidden bool
}

// NewWalker builds a walker on top of driver.
func NewWalker(driver PromptDriver) *Walker {
	return &Walker{driver: driver}
}

// ShowHidden includes dot entries in listings.
func (w *Walker) ShowHidden(show bool) *Walker {
	w.showHidden = show
	return w
}

// PickDirectory walks from start until a folder is accepted.
func (w *Walker) PickDirectory(ctx context.Context, start string) (string, bool, error) {
	return w.walk(ctx, start, true)
}

// PickFile walks from start until a file is selected.
func (w *Walker) PickFile(ctx context.Context, start string) (string, bool, error) {
	return w.walk(ctx, start, false)
}

func (w *Walker) walk(ctx context.Context, start string, wantDir bool) (string, bool, error) {
	dir := form.StartDir(start)
	for {
		dirs, files, err := w.list(dir)
		if err != nil {
			return "", false, err
		}

		var options, targets []string
		if wantDir {
			options = append(options, walkUseFolder)
			targets = append(targets, dir)
		}
		if parent := filepath.Dir(dir); parent != dir {
			options = append(options, walkParent)
			targets = append(targets, parent)
		}
		for _, name := range dirs {
			options = append(options, name+string(filepath.Separator))
			targets = append(targets, filepath.Join(dir, name))
		}
		if !wantDir {
			for _, name := range files {
				options = append(options, name)
				targets = append(targets, filepath.Join(dir, name))
			}
		}
		options = append(options, walkCancel)

		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:  dir,
			Options:  options,
			PageSize: menuPage,
		})
		if errors.Is(err, ErrAborted) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		if idx < 0 || idx >= len(targets) {
			return "", false, nil
		}

		target := targets[idx]
		switch {
		case wantDir && idx == 0:
			return target, true, nil
		case isDir(target):
			dir = target
		default:
			return target, true, nil
		}
	}
}

func (w *Walker) list(dir string) (dirs, files []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !w.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() || isDir(filepath.Join(dir, name)) {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
