// Package datafile parses the JSON experimentation datafile into an
// immutable, indexed configuration snapshot implementing
// entities.ProjectConfig.
//
// All id and key lookup maps are built once at parse time; after Parse
// returns, the snapshot is never mutated, so any number of concurrent
// decisions can read it without locking. Swapping in a newer datafile means
// parsing a new snapshot and discarding the old one wholesale.
//
// Parse is strict about JSON shape only. Dangling references inside a
// well-formed datafile (a traffic range pointing at a missing variation, a
// feature listing an unknown experiment) are preserved as-is and surface as
// lookup misses during decisions, because handling them is part of the
// decision logic, not a parse failure.
//
// # Usage
//
//	raw, err := os.ReadFile("datafile.json")
//	if err != nil {
//		// handle error
//	}
//	cfg, err := datafile.Parse(raw)
//	if err != nil {
//		// handle error
//	}
//	svc := decision.New(cfg)
package datafile
