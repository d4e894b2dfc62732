package domain

// RepoAnalysis describes a repository's technology stack and tooling.
type RepoAnalysis struct {
	Language       string  `json:"language"`
	Framework      string  `json:"framework"`
	PackageManager string  `json:"package_manager"`
	TestFramework  string  `json:"test_framework"`
	Linter         string  `json:"linter"`
	Formatter      string  `json:"formatter"`
	CISystem       string  `json:"ci_system"`
	HasClaudeMD    bool    `json:"has_claude_md"`
	HasBlueprint   bool    `json:"has_blueprint"`
	HasReadme      bool    `json:"has_readme"`
	HasPreCommit   bool    `json:"has_pre_commit"`
	Git            GitInfo `json:"git_info"`
}

// GitInfo captures basic git metadata for a repository.
type GitInfo struct {
	IsRepo      bool   `json:"is_repo"`
	Branch      string `json:"branch"`
	Remote      string `json:"remote"`
	CommitCount int    `json:"commit_count"`
}
