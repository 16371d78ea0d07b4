// Package userprofile defines the pluggable sticky-bucketing store: a
// per-user record of previously assigned experiment variations that the
// decision service consults before bucketing and rewrites after it.
//
// The Store interface is deliberately narrow (Lookup and Save) and is
// injected into the decision service at construction time. Stores are
// treated as untrusted collaborators: the service wraps them with Guard so
// a store that errors, returns garbage or outright panics degrades into a
// cache miss or a dropped save, never into a failed decision.
//
// Implementations:
//
//   - MemoryStore: unbounded in-process map, handy for tests and short-lived
//     processes.
//   - LRUStore: in-process map bounded by an LRU, for long-lived processes
//     with many users.
//   - RedisStore: shared remote store, so sticky bucketing survives restarts
//     and spans instances.
//
// # Usage
//
//	store := userprofile.NewMemoryStore()
//	svc := decision.New(cfg, decision.WithProfileStore(store))
package userprofile
