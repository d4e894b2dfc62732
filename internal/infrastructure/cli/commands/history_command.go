package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/git-repo-agent/internal/app"
	"github.com/doeshing/git-repo-agent/internal/application/scoring"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded health runs",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryPruneCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		limit int
		repo  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent health runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if repo != "" {
				if repo, err = scoring.ResolveRepo(repo); err != nil {
					return err
				}
			}
			records, err := store.Records(repo, limit)
			if err != nil {
				return fmt.Errorf("failed to retrieve history records: %w", err)
			}
			listHistoryEntries(cmd.OutOrStdout(), records, time.Now())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().StringVar(&repo, "repo", "", "Only show runs for this repository")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History cleared (%s)\n", store.Path())
			return nil
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", args[0])
			return nil
		},
	}
}

func newHistoryPruneCommand(container *app.Container) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than N days (default history.retention_days)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = container.Config.History.RetentionDays
				if days <= 0 {
					days = domain.DefaultHistoryRetainDays
				}
			}
			if days <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			cutoff := time.Now().AddDate(0, 0, -days)
			removed, err := store.Prune(cutoff)
			if err != nil {
				return fmt.Errorf("failed to prune old history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d runs older than %d days.\n", removed, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", domain.DefaultHistoryRetainDays, "Days of history to keep")
	return cmd
}

func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container.History == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.History, nil
}

func listHistoryEntries(out io.Writer, records []domain.HistoryRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%-16s | %3d %s | %2d findings | %s\n",
			humanize.RelTime(rec.Timestamp, now, "ago", "from now"),
			rec.OverallScore,
			rec.Grade,
			rec.FindingCount,
			rec.RepoPath)
	}
}
