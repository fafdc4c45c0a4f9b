package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/jsonfile"
	"github.com/shantanugsharp/chatbot-be/internal/adapters/sqlite"
	"github.com/shantanugsharp/chatbot-be/internal/app"
	"github.com/shantanugsharp/chatbot-be/internal/core/catalog"
	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src := app.SourceFor(opts.cfg.Catalog)
			raw, err := src.Load(cmd.Context())
			if err != nil {
				return domain.NewLoadFailure("stats", err)
			}
			stats := domain.ComputeStats(catalog.Normalize(raw))
			fmt.Fprintln(cmd.OutOrStdout(), stats.String())
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a JSON catalog loads",
		Long: `Decodes a JSON catalog file and reports its layout and how many tracks
normalize out of it. Exits non-zero when the file is missing, cannot be
decoded or yields no tracks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := jsonfile.Source{Path: args[0]}
			raw, err := src.Load(cmd.Context())
			if err != nil {
				return domain.NewLoadFailure("validate", err)
			}

			tracks := catalog.Normalize(raw)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:   %s\n", args[0])
			fmt.Fprintf(out, "Layout: %s\n", catalog.Shape(raw))
			fmt.Fprintf(out, "Tracks: %d\n", len(tracks))
			if len(tracks) == 0 {
				return domain.NewLoadFailure("validate", fmt.Errorf("no tracks in %s", args[0]))
			}
			fmt.Fprintln(out, domain.ComputeStats(tracks).String())
			return nil
		},
	}
}

func newImportCommand() *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "import <json-file> <sqlite-db>",
		Short: "Normalize a JSON catalog into a SQLite table",
		Long: `Normalizes a JSON catalog and writes it into a SQLite table, replacing
the table's previous contents. The database is created when missing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := jsonfile.Source{Path: args[0]}.Load(cmd.Context())
			if err != nil {
				return domain.NewLoadFailure("import", err)
			}
			tracks := catalog.Normalize(raw)

			db, err := sqlite.NewAdapter(args[1])
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.ImportTracks(cmd.Context(), table, tracks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tracks into %s (table %s)\n", n, args[1], table)
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "tracks", "destination table")
	return cmd
}
