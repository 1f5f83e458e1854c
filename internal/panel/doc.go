// Package panel defines the marine economy observation panel: the typed
// record model, the immutable in-memory table with filterable views, the
// CSV loader, and the process-wide load-once panel store.
//
// A panel is loaded exactly once per source path and is read-only after
// load. Every transformation downstream (filtering, aggregation) produces
// a new view or result table; records are never mutated in place.
package panel
