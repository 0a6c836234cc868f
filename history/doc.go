// Package history houses concrete implementations of core.HistoryStore.
// The interface itself (and the Turn struct) live in the core package to
// centralize domain contracts; keeping only implementations here prevents
// higher level packages from depending on concrete storage.
//
// Add additional backends (Redis, SQLite, etc.) in sub-packages without
// changing any calling code; only the wiring layer decides which
// implementation to instantiate.
package history
