package history

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/pkg/filesystem"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// storedTimeLayout is fixed width so lexical order equals time order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// New opens the store selected by settings. An empty path resolves to
// ~/.git-repo-agent/history/history.{db,jsonl}.
func New(settings domain.HistorySettings) ports.HistoryRepository {
	path := filesystem.ExpandHome(settings.Path)
	switch settings.Backend {
	case domain.HistoryBackendJSONL:
		if path == "" {
			path = filepath.Join(filesystem.AppDir(), "history", "history.jsonl")
		}
		return NewFileStore(path)
	default:
		if path == "" {
			path = filepath.Join(filesystem.AppDir(), "history", "history.db")
		}
		return NewSQLiteStore(path)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(storedTimeLayout, raw)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, raw)
	}
	return t
}

func ensureID(record *domain.HistoryRecord) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
}
