package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/secret-dreams/fonts/core/catalog"
	"github.com/secret-dreams/fonts/core/pool"
	"github.com/secret-dreams/fonts/core/store"

	"go.uber.org/zap"
)

// Rendering and subsetting settings. The canvas, colors and point size are
// fixed so every family's preview image looks uniform in catalog listings.
const (
	// DefaultText is rendered onto image previews. The \n sequences are
	// literal: ImageMagick's annotate operator interprets them as newlines.
	DefaultText = `ABCDEFGHIJKLM\nNOPQRSTUVWXYZ\nabcdefghijklm\nnopqrstuvwxyz\n1234567890\n!@$%(){}[]`

	canvasSize      = "532x365"
	pointSize       = "38"
	backgroundColor = "#ffffff"
	foregroundColor = "#000000"
	annotatePos     = "+0+0"

	// External tool executables.
	convertCommand = "convert"
	subsetCommand  = "pyftsubset"
)

// subsetFlavors are the web-font flavors produced for each source font.
var subsetFlavors = []string{"woff", "woff2"}

// Options controls one preview pass.
type Options struct {
	Root      string
	OutputDir string // empty keeps previews next to their source font
	Format    string
	Text      string
	SpecFile  string
	Prefix    string
	Parallel  int
	Images    bool
	Fonts     bool
}

// Output lists what one source font produced. Paths appear only for
// artifacts generated during this pass; pre-existing targets and disabled
// kinds are absent, so an all-empty Output means the file was ignored.
type Output struct {
	Source string
	Image  string
	Fonts  map[string]string
}

// Ignored reports whether nothing was generated for the source file.
func (o Output) Ignored() bool {
	return o.Image == "" && len(o.Fonts) == 0
}

// Generator derives preview assets (subsetted web fonts and rasterized
// sample images) from the fetched catalog.
type Generator struct {
	store  *store.Store
	runner Runner
	log    *zap.Logger
}

// New creates a Generator over the given store and tool runner.
func New(st *store.Store, runner Runner, log *zap.Logger) *Generator {
	return &Generator{store: st, runner: runner, log: log}
}

// Run scans root for fonts of the configured format and generates previews
// in parallel. The root directory must exist; everything below that is
// best-effort per file.
func (g *Generator) Run(ctx context.Context, opts Options) ([]pool.Result[Output], error) {
	if !g.store.DirExists(opts.Root) {
		return nil, fmt.Errorf("root directory %s does not exist", opts.Root)
	}

	files, err := g.store.Walk(opts.Root, opts.Format, opts.Prefix+"_")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", opts.Root, err)
	}

	g.log.Info("Generating font previews",
		zap.Int("files", len(files)),
		zap.Int("parallel", opts.Parallel),
	)

	results := pool.Map(ctx, opts.Parallel, files, func(ctx context.Context, path string) (Output, error) {
		return g.previewFile(ctx, path, opts)
	})

	for _, r := range results {
		switch {
		case r.Err != nil:
			g.log.Error("❎ Preview failed", zap.String("file", files[r.Index]), zap.Error(r.Err))
		case r.Value.Ignored():
			g.log.Info("❎ Ignored font and image preview", zap.String("file", files[r.Index]))
		default:
			g.log.Info("✅ Saved font preview",
				zap.String("file", files[r.Index]),
				zap.String("image", r.Value.Image),
				zap.Any("fonts", r.Value.Fonts),
			)
		}
	}

	return results, nil
}

// previewFile generates both preview kinds for one source font.
func (g *Generator) previewFile(ctx context.Context, path string, opts Options) (Output, error) {
	out := Output{Source: path, Fonts: map[string]string{}}

	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := g.store.EnsureDir(dir); err != nil {
		return out, fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), "."+opts.Format)
	display := g.displayName(dir, opts.SpecFile, base)

	if opts.Fonts {
		for _, flavor := range subsetFlavors {
			target := filepath.Join(dir, opts.Prefix+"_"+base+"."+flavor)
			if g.store.Exists(target) || !g.store.Exists(path) {
				continue
			}
			if err := g.subsetFont(ctx, path, display, target, flavor); err == nil {
				out.Fonts[flavor] = target
			}
		}
	}

	if opts.Images {
		target := filepath.Join(dir, base+".png")
		if !g.store.Exists(target) && g.store.Exists(path) {
			if err := g.renderImage(ctx, path, opts.Text, target); err == nil {
				out.Image = target
			}
		}
	}

	return out, nil
}

// displayName resolves the text subset into font previews: the family name
// from the manifest next to the output, falling back to the file base name.
func (g *Generator) displayName(dir, specFile, base string) string {
	manifest := g.store.ManifestPath(dir, specFile)
	if !g.store.Exists(manifest) {
		return base
	}
	family, err := catalog.LoadFamily(g.store.Fs(), manifest)
	if err != nil || family.Name == "" {
		return base
	}
	return family.Name
}

// subsetFont invokes the subsetting tool to produce a web font containing
// only the glyphs of the display name.
func (g *Generator) subsetFont(ctx context.Context, path, display, target, flavor string) error {
	args := []string{
		path,
		"--unicodes=" + unicodeRanges(display),
		"--flavor=" + flavor,
		"--output-file=" + target,
	}
	if flavor == "woff" {
		args = append(args, "--with-zopfli")
	}

	return g.runner.Run(ctx, subsetCommand, args...)
}

// renderImage invokes the rasterizer to draw the preview text with the given
// font onto the fixed canvas.
func (g *Generator) renderImage(ctx context.Context, path, text, target string) error {
	if text == "" {
		text = DefaultText
	}

	args := []string{
		"-size", canvasSize, "xc:" + backgroundColor,
		"-gravity", "center",
		"-font", path,
		"-pointsize", pointSize,
		"-fill", foregroundColor,
		"-annotate", annotatePos, text,
		"-flatten",
		target,
	}

	return g.runner.Run(ctx, convertCommand, args...)
}

// unicodeRanges formats the distinct code points of s as a comma-separated
// U+xxxx list, preserving first-occurrence order.
func unicodeRanges(s string) string {
	seen := make(map[rune]struct{})
	var points []string
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		points = append(points, fmt.Sprintf("U+%04x", r))
	}
	return strings.Join(points, ",")
}
