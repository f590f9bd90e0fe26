// Package kv is the device key-value store of the client: a single SQLite
// table mapping string keys to opaque byte values.
//
// Get returns (nil, nil) for a missing key so callers can tell "absent"
// apart from a broken store.
package kv
