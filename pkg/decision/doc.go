// Package decision implements the experiment and feature decision pipeline:
// given an immutable configuration snapshot and a user identity plus
// optional attributes, it deterministically decides which variation, if any,
// the user receives, and logs why.
//
// GetVariation runs a strict precedence pipeline for a single experiment:
//
//  1. the experiment must exist and be running
//  2. a runtime forced-variation override wins over everything
//  3. the authoring-time whitelist wins over the profile store and bucketing
//  4. a saved user profile entry wins over bucketing
//  5. the audience conditions must match
//  6. the user is hash-bucketed and the assignment is saved back to the
//     profile store
//
// Stages 2-4 bypass audience evaluation on purpose: forced, whitelisted and
// previously bucketed users keep their variation even when they no longer
// match the audience.
//
// Feature decisions compose on top: GetVariationForFeature first tries the
// feature's experiments in order and falls back to the feature's rollout,
// whose targeting rules are audience-gated and end in an "Everyone Else"
// rule.
//
// # Usage
//
//	cfg, err := datafile.Parse(raw)
//	if err != nil {
//		// handle error
//	}
//
//	svc := decision.New(cfg,
//		decision.WithLogger(log),
//		decision.WithProfileStore(userprofile.NewMemoryStore()),
//	)
//
//	variation := svc.GetVariation(ctx, "checkout_redesign", userID, attrs)
//
// The service is safe for concurrent use: the snapshot is read-only and the
// only mutable state, the forced-variation override store, is internally
// locked.
package decision
