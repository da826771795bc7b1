package upsert

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/secret-dreams/fonts/core/catalog"
	"github.com/secret-dreams/fonts/core/pool"
	"github.com/secret-dreams/fonts/core/retry"
	"github.com/secret-dreams/fonts/core/store"

	"go.uber.org/zap"
)

// Options controls one upsert pass.
type Options struct {
	Root         string
	Service      string
	User         string
	Password     string
	Force        bool
	SpecFile     string
	Parallel     int
	ImagePreview bool
	Prefix       string
	Tries        int
}

// FamilyResult maps each uploaded variant handle of one family directory to
// the terminal response status of its check-then-act protocol run.
type FamilyResult map[string]int

// Reconciler synchronizes the on-disk catalog to the remote service via the
// idempotent create-or-skip protocol.
type Reconciler struct {
	store *store.Store
	log   *zap.Logger

	// sleep is overridable for tests; nil means real backoff delays.
	sleep func(d time.Duration)
}

// New creates a Reconciler over the given store.
func New(st *store.Store, log *zap.Logger) *Reconciler {
	return &Reconciler{store: st, log: log}
}

// Run walks the family directories under root and uploads their variants in
// parallel, then prints the per-handle outcome report. The merged
// handle -> statuses mapping is returned for inspection; handles shared by
// multiple families concatenate rather than overwrite.
func (r *Reconciler) Run(ctx context.Context, opts Options) (map[string][]int, error) {
	if !r.store.DirExists(opts.Root) {
		return nil, fmt.Errorf("root directory %s does not exist", opts.Root)
	}

	client := NewClient(r.store, opts.Service, opts.User, opts.Password)
	r.log.Info("Base api path", zap.String("url", client.BaseURL()))
	if opts.User != "" && opts.Password != "" {
		r.log.Info("Using basic auth", zap.String("user", opts.User))
	}

	dirs, err := r.store.SubDirs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", opts.Root, err)
	}

	r.log.Info("Upserting font families",
		zap.Int("families", len(dirs)),
		zap.Int("parallel", opts.Parallel),
		zap.Bool("force", opts.Force),
	)

	results := pool.Map(ctx, opts.Parallel, dirs, func(ctx context.Context, dir string) (FamilyResult, error) {
		return r.upsertFamily(ctx, client, dir, opts)
	})

	merged := make(map[string][]int)
	for _, res := range results {
		if res.Err != nil {
			r.log.Error("❎ Failed to upsert font family", zap.String("dir", dirs[res.Index]), zap.Error(res.Err))
			continue
		}
		for handle, status := range res.Value {
			merged[handle] = append(merged[handle], status)
		}
	}

	r.report(merged)

	return merged, nil
}

// upsertFamily uploads every variant of one family directory. Directories
// without a manifest are not families and yield an empty result.
func (r *Reconciler) upsertFamily(ctx context.Context, client *Client, dir string, opts Options) (FamilyResult, error) {
	manifest := r.store.ManifestPath(dir, opts.SpecFile)
	if !r.store.Exists(manifest) {
		return FamilyResult{}, nil
	}

	family, err := catalog.LoadFamily(r.store.Fs(), manifest)
	if err != nil {
		return nil, err
	}

	result := make(FamilyResult)
	for i := range family.Variants {
		variant := &family.Variants[i]
		if len(variant.URLs) == 0 {
			continue
		}

		payload, err := BuildPayload(r.store, dir, family, variant, opts.ImagePreview, opts.Prefix)
		if err != nil {
			return nil, err
		}

		status, err := r.upsertVariant(ctx, client, payload, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert %s: %w", variant.Handle, err)
		}
		result[variant.Handle] = status
	}

	return result, nil
}

// upsertVariant executes the check-then-act protocol for one variant:
// look the handle up, create it when absent (or when forcing), otherwise
// take the lookup as the result. Rate limiting with attempts remaining and
// network timeouts retry with truncated exponential backoff.
func (r *Reconciler) upsertVariant(ctx context.Context, client *Client, payload *Payload, opts Options) (int, error) {
	policy := retry.Policy{
		Tries:        opts.Tries,
		BaseInterval: 4 * time.Second,
		Sleep:        r.sleep,
	}

	return retry.Do(ctx, policy, func(try int) (int, error) {
		head, err := client.Lookup(ctx, payload.Handle)
		if err != nil {
			return 0, err
		}

		var status int
		if head == http.StatusNotFound || (opts.Force && head == http.StatusOK) {
			status, err = client.Create(ctx, payload)
		} else {
			status, err = client.Lookup(ctx, payload.Handle)
		}
		if err != nil {
			return 0, err
		}

		if status == http.StatusTooManyRequests && try < policy.Tries {
			return status, retry.Mark(fmt.Errorf("rate limited (%d)", status))
		}

		return status, nil
	})
}

// report prints one classification line per handle/response pair.
func (r *Reconciler) report(merged map[string][]int) {
	handles := make([]string, 0, len(merged))
	for handle := range merged {
		handles = append(handles, handle)
	}
	sort.Strings(handles)

	for _, handle := range handles {
		for _, status := range merged[handle] {
			switch status {
			case http.StatusCreated:
				r.log.Info("✅ Uploaded font", zap.String("handle", handle))
			case http.StatusOK:
				r.log.Info("✅ Already uploaded font", zap.String("handle", handle))
			case http.StatusTooManyRequests:
				r.log.Error("❎ Upload error: rate limit protection kicked in",
					zap.String("handle", handle), zap.Int("status", status))
			default:
				r.log.Error("❎ Upload error",
					zap.String("handle", handle), zap.Int("status", status))
			}
		}
	}
}
