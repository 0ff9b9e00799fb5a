// Package store owns everything planner keeps on disk: the config file, per-project
// editor state and the project documents themselves.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

const dirName = ".planner"

// Store is rooted at a planner directory (usually ./.planner or $PLANNER_DIR).
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .planner directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves $PLANNER_DIR, then a .planner directory above the working
// directory, then ~/.planner.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("PLANNER_DIR")); v != "" {
		return v, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// atomicWriteFile writes through a uniquely named temp file so concurrent planner
// processes never observe a torn file.
func atomicWriteFile(path string, b []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
