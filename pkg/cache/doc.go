// Package cache provides a small thread-safe LRU used to bound in-memory
// storage, most notably the LRU-backed user profile store in pkg/userprofile.
//
// # Usage
//
//	profiles := cache.NewLRU[string, userprofile.Profile](10_000)
//	profiles.Put("user-42", profile)
//	if p, ok := profiles.Get("user-42"); ok {
//		// use p
//	}
//
// The cache evicts the least recently used entry once capacity is reached.
// Both Get and Put count as use.
package cache
