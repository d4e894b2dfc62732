// Package assets embeds the default configuration and agent prompts.
package assets

import (
	"embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// Prompts holds the built-in prompt markdown, one file per agent.
//
//go:embed prompts/*.md
var Prompts embed.FS
