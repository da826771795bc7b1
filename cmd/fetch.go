package cmd

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/secret-dreams/fonts/core/store"
	"github.com/secret-dreams/fonts/feature/fetch"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// fetchCmd downloads the upstream font catalog into a local directory tree.
// The optional arguments are positional to keep the historical invocation
// shape: fetch <root> [fonts_json_uri] [parallel] [force].
var fetchCmd = &cobra.Command{
	Use:   "fetch <root> [fonts_json_uri] [parallel] [force]",
	Short: "Fetch upstream fonts",
	Long: `Fetch downloads every font family listed in the upstream JSON feed into
one directory per family under <root>, writing a font_family.json manifest
next to the variant binaries.

Existing family directories are skipped unless force is true.

Examples:
  # Save fonts at the default feed into ./fonts
  fonts fetch ./fonts

  # Custom feed, 4 workers, overwrite existing directories
  fonts fetch ./fonts https://example.com/fonts.json 4 true`,
	Args: cobra.RangeArgs(1, 4),
	RunE: runFetch,
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	root, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	feedURL := cfg.Fetch.FeedURL
	if len(args) > 1 && args[1] != "" {
		feedURL = args[1]
	}

	parallel := 10
	if len(args) > 2 {
		if parallel, err = strconv.Atoi(args[2]); err != nil {
			return err
		}
	}

	force := false
	if len(args) > 3 {
		if force, err = strconv.ParseBool(args[3]); err != nil {
			return err
		}
	}

	fetcher := fetch.New(store.New(afero.NewOsFs()), l)
	_, err = fetcher.Run(context.Background(), fetch.Options{
		Root:     root,
		FeedURL:  feedURL,
		Parallel: parallel,
		Force:    force,
		Headers: fetch.Headers{
			UserAgent: cfg.Fetch.UserAgent,
			Referer:   cfg.Fetch.Referer,
		},
	})

	return err
}
