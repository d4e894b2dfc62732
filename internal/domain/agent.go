package domain

// AgentMode selects the orchestrator workflow.
type AgentMode string

const (
	ModeOnboard  AgentMode = "onboard"
	ModeMaintain AgentMode = "maintain"
)

// AgentDefinition describes a sub-agent offered to the orchestrator.
type AgentDefinition struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Prompt      string   `json:"prompt"`
	Tools       []string `json:"tools"`
	Model       string   `json:"model"`
}

// Briefing is everything the external agent runtime needs to start a session.
type Briefing struct {
	Mode           AgentMode         `json:"mode"`
	RepoPath       string            `json:"repo_path"`
	SystemPrompt   string            `json:"system_prompt"`
	Prompt         string            `json:"prompt"`
	AllowedTools   []string          `json:"allowed_tools"`
	PermissionMode string            `json:"permission_mode"`
	MaxTurns       int               `json:"max_turns"`
	Agents         []AgentDefinition `json:"agents"`
	Env            map[string]string `json:"env"`
	Analysis       RepoAnalysis      `json:"analysis"`
	Health         *HealthReport     `json:"health,omitempty"`
}

// OnboardOptions mirrors the onboard command flags.
type OnboardOptions struct {
	RepoPath      string
	DryRun        bool
	SkipCI        bool
	SkipBlueprint bool
	Branch        string
}

// MaintainOptions mirrors the maintain command flags.
type MaintainOptions struct {
	RepoPath   string
	Fix        bool
	ReportOnly bool
	Focus      []Category
}

// PromptData is the input to prompt templates.
type PromptData struct {
	Mode          AgentMode
	RepoPath      string
	Branch        string
	DryRun        bool
	SkipCI        bool
	SkipBlueprint bool
	Fix           bool
	ReportOnly    bool
	Focus         []Category
	Analysis      RepoAnalysis
	Health        *HealthReport
}
