package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/secret-dreams/fonts/core/catalog"
	"github.com/secret-dreams/fonts/core/pool"
	"github.com/secret-dreams/fonts/core/store"

	"go.uber.org/zap"
)

// Outcome classifies what happened to one family during a fetch pass.
type Outcome string

const (
	// OutcomeFetched means the family directory was created and populated.
	OutcomeFetched Outcome = "fetched"
	// OutcomeSkipped means the directory already existed and force was off.
	OutcomeSkipped Outcome = "skipped"
)

// Options controls one fetch pass.
type Options struct {
	Root     string
	FeedURL  string
	Parallel int
	Force    bool
	Headers  Headers
}

// Fetcher populates the on-disk catalog from a remote manifest feed.
type Fetcher struct {
	store  *store.Store
	client *http.Client
	log    *zap.Logger
}

// New creates a Fetcher over the given store.
func New(st *store.Store, log *zap.Logger) *Fetcher {
	return &Fetcher{
		store:  st,
		client: newHTTPClient(30 * time.Second),
		log:    log,
	}
}

// Run fetches the feed and materializes every family in parallel. A failed
// download aborts only its own family; the per-family outcome (or error) is
// returned keyed by input order.
func (f *Fetcher) Run(ctx context.Context, opts Options) ([]pool.Result[Outcome], error) {
	feed, err := f.loadFeed(ctx, opts)
	if err != nil {
		return nil, err
	}

	f.log.Info("Downloading font families",
		zap.Int("families", len(feed.FontFamilies)),
		zap.Int("parallel", opts.Parallel),
		zap.Bool("force", opts.Force),
	)

	results := pool.Map(ctx, opts.Parallel, feed.FontFamilies, func(ctx context.Context, family catalog.Family) (Outcome, error) {
		return f.fetchFamily(ctx, &family, opts)
	})

	for i, r := range results {
		name := feed.FontFamilies[i].Name
		switch {
		case r.Err != nil:
			f.log.Error("❎ Failed to fetch font family", zap.String("family", name), zap.Error(r.Err))
		case r.Value == OutcomeSkipped:
			f.log.Info("Skipped existing font family", zap.String("family", name))
		default:
			f.log.Info("✅ Fetched font family", zap.String("family", name))
		}
	}

	return results, nil
}

// loadFeed retrieves the manifest feed from an HTTP URI or a local path.
func (f *Fetcher) loadFeed(ctx context.Context, opts Options) (*catalog.Feed, error) {
	var data []byte

	if strings.HasPrefix(opts.FeedURL, "http://") || strings.HasPrefix(opts.FeedURL, "https://") {
		body, err := get(ctx, f.client, opts.Headers, opts.FeedURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch font feed: %w", err)
		}
		defer body.Close()
		if data, err = io.ReadAll(body); err != nil {
			return nil, fmt.Errorf("failed to read font feed: %w", err)
		}
	} else {
		var err error
		if data, err = f.store.ReadFile(opts.FeedURL); err != nil {
			return nil, fmt.Errorf("failed to read font feed: %w", err)
		}
	}

	return catalog.ParseFeed(data)
}

// fetchFamily materializes one family directory: binaries for every
// (variant, format) pair plus the rewritten manifest. The incoming family is
// a per-worker copy, so mutating its variants is safe.
func (f *Fetcher) fetchFamily(ctx context.Context, family *catalog.Family, opts Options) (Outcome, error) {
	slug := store.Slugify(family.Name)
	dir := f.store.FamilyDir(opts.Root, slug)

	if opts.Force && f.store.DirExists(dir) {
		f.log.Info("Directory already existed, removing", zap.String("dir", dir))
		if err := f.store.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}
	if f.store.DirExists(dir) {
		return OutcomeSkipped, nil
	}

	if err := f.store.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for i := range family.Variants {
		variant := &family.Variants[i]

		// Preview URL hints from the feed are not persisted.
		variant.PreviewURLs = nil

		files := make(map[string]string, len(variant.URLs))
		for _, format := range sortedKeys(variant.URLs) {
			uri := variant.URLs[format]
			fileName := variant.Handle + "." + format
			dest := f.store.VariantPath(dir, variant.Handle, format)
			if err := download(ctx, f.store.Fs(), f.client, opts.Headers, uri, dest); err != nil {
				return "", fmt.Errorf("failed to download %s (%s): %w", variant.Handle, format, err)
			}
			files[format] = fileName
		}
		variant.URLs = files
	}

	manifest := f.store.ManifestPath(dir, "font_family.json")
	if err := catalog.SaveFamily(f.store.Fs(), manifest, family); err != nil {
		return "", err
	}

	return OutcomeFetched, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
