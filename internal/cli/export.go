package cli

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placeviz/internal/render/img"
)

var (
	exportFlags requestFlags
	cloudOut    string
	vennOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the word cloud and Venn diagram as PNG images",
	Long: `Export runs the pipeline for the given control values and writes the
word cloud, and with --gender the male/female Venn diagram, as PNG files.

Example:
  placeviz export --testimony All --category BUILDING --cloud cloud.png
  placeviz export --testimony All --category RIVER --gender --venn venn.png`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.bind(exportCmd)
	exportCmd.Flags().StringVar(&cloudOut, "cloud", "cloud.png", "word cloud output path (empty to skip)")
	exportCmd.Flags().StringVar(&vennOut, "venn", "venn.png", "Venn diagram output path, used with --gender (empty to skip)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	req, err := exportFlags.request()
	if err != nil {
		return err
	}
	svc, closeFn, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := svc.Explore(ctx, req)
	if err != nil {
		return err
	}
	if cloudOut != "" {
		m, lay := img.CloudLayout(res.Tokens, img.CloudOptions{
			Width:       cfg.Cloud.Width,
			Height:      cfg.Cloud.Height,
			MaxWords:    cfg.Cloud.MaxWords,
			MinFontSize: cfg.Cloud.MinFontSize,
			MaxFontSize: cfg.Cloud.MaxFontSize,
		})
		if err := writeImage(cloudOut, m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ word cloud (%d words): %s\n", len(lay.Placements), cloudOut)
		if len(lay.Dropped) > 0 {
			logger.Warn("words left out of the cloud", zap.Strings("words", lay.Dropped))
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d words did not fit the %dx%d canvas\n", len(lay.Dropped), cfg.Cloud.Width, cfg.Cloud.Height)
		}
	}
	if vennOut != "" && res.Comparison != nil {
		m := img.Venn(res.Comparison.MaleSet, res.Comparison.FemaleSet, [2]string{"Male", "Female"}, img.VennOptions{
			Width:  cfg.Venn.Width,
			Height: cfg.Venn.Height,
		})
		if err := writeImage(vennOut, m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ venn diagram: %s\n", vennOut)
	}
	return nil
}

func writeImage(path string, m image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	if err := img.WritePNG(f, m); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	logger.Debug("image written", zap.String("path", path))
	return nil
}
