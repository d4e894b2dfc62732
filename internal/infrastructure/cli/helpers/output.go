package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

// WriteOutput prints text to out, or writes it to path when path is set and
// notes the destination on notice.
func WriteOutput(out, notice io.Writer, path, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if path == "" {
		_, err := io.WriteString(out, text)
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), domain.FilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(notice, "Report written to %s\n", path)
	return nil
}

// RepoArgs defaults an empty argument list to the current directory.
func RepoArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
