package cmd

import (
	"context"
	"path/filepath"

	"github.com/secret-dreams/fonts/core/store"
	"github.com/secret-dreams/fonts/feature/upsert"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	upsertService      string
	upsertUser         string
	upsertPassword     string
	upsertForce        bool
	upsertSpecFile     string
	upsertParallel     int
	upsertImagePreview bool
	upsertPrefix       string
	upsertTries        int
)

var upsertCmd = &cobra.Command{
	Use:   "upsert <root>",
	Short: "Upsert fonts to remote service",
	Long: `Upsert walks the family directories under <root> and uploads each
variant to the remote service, skipping handles the service already knows.

Rate-limit responses are retried with exponential backoff up to --tries
attempts.

Examples:
  # Load fonts at root directory
  fonts upsert path/to/root --service https://shop.example`,
	Args: cobra.ExactArgs(1),
	RunE: runUpsert,
}

func init() {
	upsertCmd.Flags().StringVar(&upsertService, "service", "", "Remote service base URL (defaults to SERVICE_ENDPOINT)")
	upsertCmd.Flags().StringVar(&upsertUser, "service_user", "", "Service username")
	upsertCmd.Flags().StringVar(&upsertPassword, "service_password", "", "Service password")
	upsertCmd.Flags().BoolVar(&upsertForce, "force", false, "Overwrite existing remote entries")
	upsertCmd.Flags().StringVar(&upsertSpecFile, "specification_file", "font_family.json", "Name of file that describes font family")
	upsertCmd.Flags().IntVar(&upsertParallel, "parallel", 5, "Run job in parallel")
	upsertCmd.Flags().BoolVar(&upsertImagePreview, "image_preview", true, "Upload image preview if present")
	upsertCmd.Flags().StringVar(&upsertPrefix, "preview_prefix", "preview", "Font preview prefix")
	upsertCmd.Flags().IntVar(&upsertTries, "tries", 12, "Maximum retry count")

	RootCmd.AddCommand(upsertCmd)
}

func runUpsert(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	root, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	// Flags win over config; config supplies the environment defaults.
	service := upsertService
	if service == "" {
		service = cfg.Service.Endpoint
	}
	user := upsertUser
	if user == "" {
		user = cfg.Service.User
	}
	password := upsertPassword
	if password == "" {
		password = cfg.Service.Password
	}

	reconciler := upsert.New(store.New(afero.NewOsFs()), l)
	_, err = reconciler.Run(context.Background(), upsert.Options{
		Root:         root,
		Service:      service,
		User:         user,
		Password:     password,
		Force:        upsertForce,
		SpecFile:     upsertSpecFile,
		Parallel:     upsertParallel,
		ImagePreview: upsertImagePreview,
		Prefix:       upsertPrefix,
		Tries:        upsertTries,
	})

	return err
}
