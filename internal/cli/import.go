package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placeviz/internal/dataset/csvfile"
	"placeviz/internal/dataset/jsonl"
	"placeviz/internal/dataset/sqlite"
	"placeviz/internal/domain"
)

var (
	importType string
	importTo   string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a JSONL or CSV testimony table into a SQLite database",
	Long: `Import validates a JSONL or CSV testimony table and replaces the contents
of the SQLite database at --to with it.

Example:
  placeviz import data/data_counts.jsonl --to data/testimonies.db
  placeviz --data data/testimonies.db explore --mode Most --category FOREST`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importType, "type", "", "input format: jsonl or csv (default from extension)")
	importCmd.Flags().StringVar(&importTo, "to", "testimonies.db", "SQLite database path")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	src := args[0]
	typ := importType
	if typ == "" {
		typ = typeFromExt(src)
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var rows []domain.Testimony
	switch typ {
	case "jsonl":
		rows, err = jsonl.Read(ctx, f)
	case "csv":
		rows, err = csvfile.Read(ctx, f)
	default:
		return fmt.Errorf("cannot import from %s input", typ)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	table, err := domain.NewTable(rows)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	st, err := sqlite.Open(ctx, importTo)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(ctx, table.Rows()); err != nil {
		return err
	}
	logger.Info("import complete", zap.String("from", src), zap.String("to", importTo), zap.Int("rows", table.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ imported %d testimonies into %s\n", table.Len(), importTo)
	return nil
}
