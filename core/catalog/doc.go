// Package catalog defines the font family data model: the remote feed
// document, the per-family manifest persisted as font_family.json, and the
// variant records both share.
package catalog
