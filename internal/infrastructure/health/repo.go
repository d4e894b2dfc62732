package health

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/pkg/filesystem"
)

// repoView is a read-only view of a repository rooted at root. Every probe
// treats an unreadable entry exactly like a missing one.
type repoView struct {
	root string
	filesystem.Tree
}

func newRepoView(root string) repoView {
	return repoView{root: root, Tree: filesystem.Tree(root)}
}

// read returns at most domain.MaxReadBytes of a regular file. ok is false when
// the file is absent, not regular, or unreadable.
func (r repoView) read(parts ...string) (content string, ok bool) {
	return readBounded(r.Path(parts...))
}

// readStrict is read plus a UTF-8 validity requirement, used for manifests.
func (r repoView) readStrict(parts ...string) (string, bool) {
	content, ok := r.read(parts...)
	if !ok || !utf8.ValidString(content) {
		return "", false
	}
	return content, true
}

// textLength counts characters with universal newlines: "\r\n" and a lone
// "\r" each count as one.
func textLength(s string) int {
	return utf8.RuneCountInString(s) - strings.Count(s, "\r\n")
}

func readBounded(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	data, err := io.ReadAll(io.LimitReader(f, domain.MaxReadBytes))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// workflowFiles lists .github/workflows/*.yml in name order.
func (r repoView) workflowFiles() []string {
	matches, err := filepath.Glob(r.Path(".github", "workflows", "*.yml"))
	if err != nil {
		return nil
	}
	var files []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// workflowContents yields the lower-cased content of each readable workflow.
func (r repoView) workflowContents() []string {
	var contents []string
	for _, wf := range r.workflowFiles() {
		if content, ok := readBounded(wf); ok {
			contents = append(contents, strings.ToLower(content))
		}
	}
	return contents
}

// anyWorkflowContains reads workflows in name order and stops at the first
// whose lower-cased content contains any needle.
func (r repoView) anyWorkflowContains(needles ...string) bool {
	for _, wf := range r.workflowFiles() {
		content, ok := readBounded(wf)
		if ok && containsAny(strings.ToLower(content), needles...) {
			return true
		}
	}
	return false
}

// hasFileNamed walks the tree for a file whose name contains substr,
// skipping virtual-environment paths and unreadable directories. The walk stops
// at the first match.
func (r repoView) hasFileNamed(substr string) bool {
	found := false
	_ = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d == nil {
			return nil
		}
		if strings.Contains(d.Name(), ".venv") && path != r.root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.Contains(d.Name(), substr) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}
