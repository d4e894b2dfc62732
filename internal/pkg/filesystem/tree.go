package filesystem

import (
	"os"
	"path/filepath"
)

// Tree probes paths below a root directory. Stat failures count as absent.
type Tree string

// Path joins parts onto the root.
func (t Tree) Path(parts ...string) string {
	return filepath.Join(append([]string{string(t)}, parts...)...)
}

// Exists reports whether the path exists as a file or directory.
func (t Tree) Exists(parts ...string) bool {
	_, err := os.Stat(t.Path(parts...))
	return err == nil
}

// IsDir reports whether the path is a directory.
func (t Tree) IsDir(parts ...string) bool {
	info, err := os.Stat(t.Path(parts...))
	return err == nil && info.IsDir()
}

// AnyExists reports whether any of the names exists directly under the root.
func (t Tree) AnyExists(names ...string) bool {
	for _, name := range names {
		if t.Exists(name) {
			return true
		}
	}
	return false
}
