// Package fetch implements the first pipeline stage: downloading the remote
// manifest feed and materializing each font family as a directory of variant
// binaries plus a font_family.json manifest.
//
// # Idempotence
//
// A family directory that already exists is skipped entirely unless force is
// set, in which case it is removed and rebuilt. A failed download leaves its
// directory incomplete; a force rerun is the recovery path.
//
// # Request Identity
//
// Every upstream request carries a browser User-Agent and a Referer header,
// because the source CDN rejects default client identifiers.
package fetch
