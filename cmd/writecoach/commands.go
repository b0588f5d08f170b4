package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"writecoach-backend/application/commands"
	"writecoach-backend/application/queries"
	querybus "writecoach-backend/application/queries/bus"
	"writecoach-backend/domain/core/entities"
	"writecoach-backend/infrastructure/di"
	pkgerrors "writecoach-backend/pkg/errors"
)

func newRootCmd(c *di.Container) *cobra.Command {
	root := &cobra.Command{
		Use:           "writecoach",
		Short:         "Analyse writing practice texts",
		Long:          "writecoach checks spelling, counts discourse connectors and personal vocabulary, and tracks daily writing streaks.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAnalyzeCmd(c),
		newHistoryCmd(c),
		newStreaksCmd(c),
		newVocabCmd(c),
	)
	return root
}

func newAnalyzeCmd(c *di.Container) *cobra.Command {
	var (
		userID string
		textID string
		title  string
		vocab  []string
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyse a text read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			id := uuid.NewString()
			if err := c.CommandBus.Send(cmd.Context(), commands.AnalyzeTextCommand{
				AnalysisID: id,
				UserID:     userID,
				TextID:     textID,
				Title:      title,
				Content:    content,
				Vocabulary: vocab,
			}); err != nil {
				return err
			}

			analysis, err := querybus.AskAs[*entities.TextAnalysis](cmd.Context(), c.QueryBus, queries.GetAnalysisQuery{AnalysisID: id})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user the text belongs to")
	cmd.Flags().StringVar(&textID, "text-id", "", "identifier of the text (defaults to the analysis ID)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "title of the text")
	cmd.Flags().StringSliceVar(&vocab, "vocab", nil, "extra vocabulary entries for this analysis")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newHistoryCmd(c *di.Container) *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List a user's analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyses, err := querybus.AskAs[[]*entities.TextAnalysis](cmd.Context(), c.QueryBus, queries.ListAnalysesQuery{UserID: userID, Limit: limit})
			if err != nil {
				return err
			}

			entries := make([]historyEntry, 0, len(analyses))
			for _, a := range analyses {
				entries = append(entries, historyEntry{
					ID:         a.ID.String(),
					Title:      a.Title,
					AnalyzedAt: a.AnalyzedAt,
					Counters:   a.Counters(),
				})
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user whose analyses to list")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of analyses (0 for all)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

type historyEntry struct {
	ID         string            `json:"id"`
	Title      string            `json:"title,omitempty"`
	AnalyzedAt time.Time         `json:"analyzedAt"`
	Counters   entities.Counters `json:"counters"`
}

func newStreaksCmd(c *di.Container) *cobra.Command {
	var (
		userID string
		at     []string
		now    string
	)

	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Show current and longest daily writing streaks",
		Long:  "Streaks are computed from the user's stored activity, or from --at timestamps (RFC 3339) when given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := queries.GetStreaksQuery{UserID: userID}

			if cmd.Flags().Changed("at") {
				query.Timestamps = make([]time.Time, 0, len(at))
				for _, s := range at {
					ts, err := parseTime(s)
					if err != nil {
						return err
					}
					query.Timestamps = append(query.Timestamps, ts)
				}
			}
			if now != "" {
				ts, err := parseTime(now)
				if err != nil {
					return err
				}
				query.At = ts
			}

			result, err := querybus.AskAs[*queries.GetStreaksResult](cmd.Context(), c.QueryBus, query)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user whose activity to read")
	cmd.Flags().StringSliceVar(&at, "at", nil, "activity timestamps to use instead of stored activity")
	cmd.Flags().StringVar(&now, "now", "", "evaluate streaks as of this time instead of the current time")
	return cmd
}

func newVocabCmd(c *di.Container) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage a user's personal vocabulary",
	}
	cmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user whose vocabulary to manage")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add word...",
			Short: "Add words or phrases",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.CommandBus.Send(cmd.Context(), commands.AddVocabularyCommand{UserID: userID, Words: args})
			},
		},
		&cobra.Command{
			Use:   "remove word",
			Short: "Remove a word or phrase",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.CommandBus.Send(cmd.Context(), commands.RemoveVocabularyCommand{UserID: userID, Word: args[0]})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List words with how often they were used",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				result, err := querybus.AskAs[*queries.ListVocabularyResult](cmd.Context(), c.QueryBus, queries.ListVocabularyQuery{UserID: userID})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			},
		},
	)
	return cmd
}

// readInput reads the named file, or stdin when no file or "-" is given
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", pkgerrors.NewValidationError(fmt.Sprintf("cannot read %s: %v", args[0], err))
	}
	return string(data), nil
}

func parseTime(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, pkgerrors.NewValidationError(fmt.Sprintf("invalid timestamp %q: expected RFC 3339", s))
	}
	return ts, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
