package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// FilePermissions is the permission for reports and exports (rw-r--r--)
	FilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultGitTimeout bounds quick git queries (branch, remote)
	DefaultGitTimeout = 5 * time.Second
	// DefaultCommitCountTimeout bounds `git rev-list --count`
	DefaultCommitCountTimeout = 10 * time.Second
)

// Limit constants
const (
	// MaxReadBytes caps how much of any single file the scorer reads
	MaxReadBytes = 1 << 20
	// DefaultBatchConcurrency bounds concurrent repository checks
	DefaultBatchConcurrency = 4
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 90
)

// Agent constants
const (
	// DefaultAgentMaxTurns caps the orchestrator conversation
	DefaultAgentMaxTurns = 50
	// DefaultOnboardBranch is the branch onboarding changes land on
	DefaultOnboardBranch = "setup/onboard"
	// DefaultSubagentModel is the model alias given to sub-agents
	DefaultSubagentModel = "sonnet"
	// MCPServerName is the name the repository tools are served under
	MCPServerName = "repo-tools"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
