// Package upsert implements the third pipeline stage: reconciling the
// on-disk font catalog with the remote service.
//
// # Protocol
//
// Each variant runs a check-then-act sequence: GET the handle; on 404 (or
// 200 with force) POST the multipart payload to the collection endpoint,
// otherwise re-issue the GET and accept it as the outcome. A 429 with
// attempts remaining, or a network timeout, retries with truncated
// exponential backoff (base 4s, doubling, default 12 tries). Any other
// status is terminal and recorded, never raised.
//
// # Aggregation
//
// Per-family handle->status maps are merged into one flat handle->statuses
// mapping. Handles reused across families concatenate; this mirrors the
// reporting the service operators rely on.
package upsert
