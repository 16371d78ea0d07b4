package decision

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/expkit/pkg/bucketer"
	"github.com/dmitrymomot/expkit/pkg/condition"
	"github.com/dmitrymomot/expkit/pkg/entities"
	"github.com/dmitrymomot/expkit/pkg/userprofile"
)

// BucketingIDAttribute is the reserved attribute overriding the identity
// used for hashing. When present and a non-empty string, bucketing hashes
// this value instead of the user id; all other stages still key on the
// user id.
const BucketingIDAttribute = "$opt_bucketing_id"

// Service answers variation decisions against one configuration snapshot.
// It owns no mutable state besides the forced-variation override store and
// is safe for concurrent use.
type Service struct {
	config   entities.ProjectConfig
	bucketer *bucketer.Bucketer
	profiles userprofile.Store
	forced   *ForcedVariations
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for decision diagnostics. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProfileStore injects a sticky-bucketing store. The store is wrapped
// with userprofile.Guard; its failures are logged and degrade into cache
// misses, never into failed decisions.
func WithProfileStore(store userprofile.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.profiles = userprofile.Guard(store)
		}
	}
}

// New creates a Service deciding against the given snapshot.
func New(config entities.ProjectConfig, opts ...Option) *Service {
	s := &Service{
		config: config,
		forced: NewForcedVariations(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.bucketer == nil {
		s.bucketer = bucketer.New(s.logger)
	}
	return s
}

// Bucketer exposes the underlying bucketer for composition and testing.
func (s *Service) Bucketer() *bucketer.Bucketer {
	return s.bucketer
}

// ForcedVariations exposes the runtime override store.
func (s *Service) ForcedVariations() *ForcedVariations {
	return s.forced
}

// GetVariation decides which variation the user receives for the experiment,
// or nil when the user is not part of it. Precedence: forced override,
// whitelist, saved profile, then audience-gated bucketing; see the package
// documentation for the exact pipeline.
func (s *Service) GetVariation(ctx context.Context, experimentKey, userID string, attrs map[string]any) *entities.Variation {
	exp, ok := s.config.ExperimentByKey(experimentKey)
	if !ok {
		s.logger.ErrorContext(ctx, "experiment not found in configuration",
			slog.String("experiment_key", experimentKey))
		return nil
	}

	if !exp.IsRunning() {
		s.logger.InfoContext(ctx, "experiment is not running",
			slog.String("experiment_key", exp.Key),
			slog.String("status", exp.Status))
		return nil
	}

	if variationKey, ok := s.forced.Get(exp.Key, userID); ok {
		if v := exp.VariationByKey(variationKey); v != nil {
			s.logger.DebugContext(ctx, "user has forced variation",
				slog.String("experiment_key", exp.Key),
				slog.String("user_id", userID),
				slog.String("variation_key", v.Key))
			return v
		}
		s.logger.WarnContext(ctx, "forced variation not found in configuration, proceeding",
			slog.String("experiment_key", exp.Key),
			slog.String("user_id", userID),
			slog.String("variation_key", variationKey))
	}

	if variationID, ok := exp.Whitelist[userID]; ok {
		if v := exp.VariationByID(variationID); v != nil {
			s.logger.InfoContext(ctx, "user is whitelisted into variation",
				slog.String("experiment_key", exp.Key),
				slog.String("user_id", userID),
				slog.String("variation_key", v.Key))
			return v
		}
		s.logger.WarnContext(ctx, "whitelisted variation not found in configuration, proceeding",
			slog.String("experiment_key", exp.Key),
			slog.String("user_id", userID),
			slog.String("variation_id", variationID))
	}

	profile := s.lookupProfile(ctx, userID)
	if variationID, ok := profile.Variation(exp.ID); ok {
		if v := exp.VariationByID(variationID); v != nil {
			s.logger.InfoContext(ctx, "returning previously bucketed variation from user profile",
				slog.String("experiment_key", exp.Key),
				slog.String("user_id", userID),
				slog.String("variation_key", v.Key))
			return v
		}
		s.logger.DebugContext(ctx, "saved variation no longer in configuration, ignoring",
			slog.String("experiment_key", exp.Key),
			slog.String("user_id", userID),
			slog.String("variation_id", variationID))
	}

	if result := condition.Evaluate(exp.AudienceConditions, attrs); result != condition.True {
		s.logger.InfoContext(ctx, "user does not meet conditions to be in experiment",
			slog.String("experiment_key", exp.Key),
			slog.String("user_id", userID),
			slog.String("audience_result", result.String()))
		return nil
	}

	variation := s.bucketer.Bucket(s.bucketingID(ctx, userID, attrs), exp, s.config)
	if variation == nil {
		s.logger.InfoContext(ctx, "user not bucketed into any variation",
			slog.String("experiment_key", exp.Key),
			slog.String("user_id", userID))
		return nil
	}
	s.logger.InfoContext(ctx, "user bucketed into variation",
		slog.String("experiment_key", exp.Key),
		slog.String("user_id", userID),
		slog.String("variation_key", variation.Key))

	s.saveProfile(ctx, userID, profile, exp.ID, variation.ID)
	return variation
}

// bucketingID resolves the identity used for hashing: the reserved attribute
// when it is a non-empty string, otherwise the user id.
func (s *Service) bucketingID(ctx context.Context, userID string, attrs map[string]any) string {
	raw, ok := attrs[BucketingIDAttribute]
	if !ok {
		return userID
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		s.logger.WarnContext(ctx, "invalid bucketing id attribute, using user id",
			slog.String("user_id", userID))
		return userID
	}
	return id
}

// lookupProfile fetches the user's profile, converting any store failure
// into a miss.
func (s *Service) lookupProfile(ctx context.Context, userID string) *userprofile.Profile {
	if s.profiles == nil {
		return nil
	}
	profile, err := s.profiles.Lookup(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "user profile lookup failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil
	}
	return profile
}

// saveProfile merges the new assignment into the user's existing record and
// writes it back. A store failure is logged and the decision stands.
func (s *Service) saveProfile(ctx context.Context, userID string, profile *userprofile.Profile, experimentID, variationID string) {
	if s.profiles == nil {
		return
	}
	if profile == nil {
		profile = userprofile.NewProfile(userID)
	}
	profile.SetVariation(experimentID, variationID)

	if err := s.profiles.Save(ctx, profile); err != nil {
		s.logger.ErrorContext(ctx, "user profile save failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return
	}
	s.logger.DebugContext(ctx, "saved variation into user profile",
		slog.String("user_id", userID),
		slog.String("experiment_id", experimentID),
		slog.String("variation_id", variationID))
}
