package analyzer

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

// gitInfo queries branch, origin remote and commit count. Each query is
// independent; a failed or timed-out query leaves its default in place.
func (a *Analyzer) gitInfo(ctx context.Context, root string) domain.GitInfo {
	info := domain.GitInfo{Branch: unknown, Remote: none}
	if !newRepo(root).Exists(".git") {
		return info
	}
	info.IsRepo = true

	if out, ok := a.runGit(ctx, root, a.gitTimeout, "branch", "--show-current"); ok {
		info.Branch = out
		if info.Branch == "" {
			info.Branch = "HEAD"
		}
	}
	if out, ok := a.runGit(ctx, root, a.gitTimeout, "remote", "get-url", "origin"); ok {
		info.Remote = out
	}
	if out, ok := a.runGit(ctx, root, a.commitCountTimeout, "rev-list", "--count", "HEAD"); ok {
		if n, err := strconv.Atoi(out); err == nil {
			info.CommitCount = n
		}
	}
	return info
}

// runGit returns trimmed stdout when git exits zero within timeout.
func (a *Analyzer) runGit(ctx context.Context, dir string, timeout time.Duration, args ...string) (string, bool) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(cctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if a.logger != nil {
			a.logger.Debug("git query failed", map[string]interface{}{
				"args":  strings.Join(args, " "),
				"dir":   dir,
				"error": err.Error(),
			})
		}
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}
