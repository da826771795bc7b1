// Package preview implements the second pipeline stage: deriving preview
// assets from fetched font binaries.
//
// Two kinds are produced per source font: subsetted woff/woff2 files
// containing only the glyphs of the family's display name (via pyftsubset),
// and a rasterized glyph-sample PNG (via ImageMagick convert).
//
// # Skip-If-Exists
//
// A preview target that already exists on disk is never regenerated or
// validated; its existence is the only state tracked. Files whose base name
// carries the preview prefix are excluded from scanning so previews of
// previews are never produced.
//
// # Best Effort
//
// External tool failures are logged with the tool's stderr and otherwise
// swallowed: a failed subset or render leaves that artifact absent without
// failing the file or the run.
package preview
