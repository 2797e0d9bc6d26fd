package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"yamdb/internal/data/repository"
	"yamdb/internal/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type importOptions struct {
	batchSize  int
	jsonOutput bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Load CSV fixtures into the database",
		Long: "Load users, category, genre, titles, review, comments and genre_title CSV files.\n" +
			"Without dir the files are read from $STATICFILES_DIR/data.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := bootstrap()
			if err != nil {
				return err
			}
			defer env.Close()

			config := importer.Config{
				StaticFilesDir: env.config.Import.StaticFilesDir,
				BatchSize:      env.config.Import.BatchSize,
			}
			if len(args) == 1 {
				config.DataDir = args[0]
			}
			if opts.batchSize > 0 {
				config.BatchSize = opts.batchSize
			}

			imp, err := importer.NewImporter(config, repository.NewRepository(env.db, env.logger), env.logger)
			if err != nil {
				return err
			}

			report, err := imp.Run(cmd.Context())
			if report != nil {
				if perr := printReport(cmd.OutOrStdout(), report, opts.jsonOutput); perr != nil {
					env.logger.Warn("Failed to print import report", zap.Error(perr))
				}
			}
			if importer.IsFatal(err) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "Rows per INSERT statement (default from IMPORT_BATCH_SIZE)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func printReport(w io.Writer, report *importer.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "Imported from %s\n", report.Dir)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tPARSED\tINSERTED\tFAILED")
	for _, t := range report.Tags {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", t.Tag, t.Parsed, t.Inserted, t.Failed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, name := range report.Skipped {
		fmt.Fprintf(w, "skipped %s\n", name)
	}
	return nil
}
