package cmd

import (
	"context"
	"path/filepath"

	"github.com/secret-dreams/fonts/core/store"
	"github.com/secret-dreams/fonts/feature/preview"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	previewOutput   string
	previewFormat   string
	previewText     string
	previewSpecFile string
	previewPrefix   string
	previewParallel int
	previewImages   bool
	previewFonts    bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <root>",
	Short: "Generate font and image previews",
	Long: `Preview scans <root> for font files of the accepted format and derives
preview assets from them: subsetted woff/woff2 files carrying only the
glyphs of the family name, and a rasterized glyph-sample PNG.

Targets that already exist are never regenerated.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewOutput, "output", "", "Directory previews are written to (defaults to each font's directory)")
	previewCmd.Flags().StringVar(&previewFormat, "format", "woff", "Accepted font format")
	previewCmd.Flags().StringVar(&previewText, "text", preview.DefaultText, "Text used for preview")
	previewCmd.Flags().StringVar(&previewSpecFile, "specification_file", "font_family.json", "Name of file that describes font family")
	previewCmd.Flags().StringVar(&previewPrefix, "preview_prefix", "preview", "Font preview prefix")
	previewCmd.Flags().IntVar(&previewParallel, "parallel", 5, "Run job in parallel")
	previewCmd.Flags().BoolVar(&previewImages, "images", true, "Generate preview images")
	previewCmd.Flags().BoolVar(&previewFonts, "fonts", true, "Generate preview fonts")

	RootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	_, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	root, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	output := previewOutput
	if output != "" {
		if output, err = filepath.Abs(output); err != nil {
			return err
		}
	}

	st := store.New(afero.NewOsFs())
	generator := preview.New(st, preview.NewExecRunner(l), l)
	_, err = generator.Run(context.Background(), preview.Options{
		Root:      root,
		OutputDir: output,
		Format:    previewFormat,
		Text:      previewText,
		SpecFile:  previewSpecFile,
		Prefix:    previewPrefix,
		Parallel:  previewParallel,
		Images:    previewImages,
		Fonts:     previewFonts,
	})

	return err
}
