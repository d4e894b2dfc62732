package domain

// Config mirrors ~/.git-repo-agent/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version" json:"config_format_version"`
	Preferences         Preferences      `yaml:"preferences" json:"preferences"`
	History             HistorySettings  `yaml:"history" json:"history"`
	Analysis            AnalysisSettings `yaml:"analysis" json:"analysis"`
	Agent               AgentSettings    `yaml:"agent" json:"agent"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Color         string `yaml:"color" json:"color"`
}

// HistorySettings controls where health runs are recorded.
type HistorySettings struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	Backend       string `yaml:"backend" json:"backend"`
	Path          string `yaml:"path" json:"path"`
	RetentionDays int    `yaml:"retention_days" json:"retention_days"`
}

// AnalysisSettings bounds the git subprocesses run by the analyzer.
type AnalysisSettings struct {
	GitTimeout         string `yaml:"git_timeout" json:"git_timeout"`
	CommitCountTimeout string `yaml:"commit_count_timeout" json:"commit_count_timeout"`
}

// AgentSettings configures briefings handed to the agent runtime.
type AgentSettings struct {
	Model         string `yaml:"model" json:"model"`
	MaxTurns      int    `yaml:"max_turns" json:"max_turns"`
	DefaultBranch string `yaml:"default_branch" json:"default_branch"`
	PromptsDir    string `yaml:"prompts_dir" json:"prompts_dir"`
}

// History backends.
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendJSONL  = "jsonl"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
