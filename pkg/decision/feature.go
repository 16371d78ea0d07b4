package decision

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/expkit/pkg/condition"
	"github.com/dmitrymomot/expkit/pkg/entities"
)

// GetVariationForFeature decides the feature for the user: an experiment
// decision when one of the feature's experiments claims the user, otherwise
// a rollout decision, otherwise nil.
func (s *Service) GetVariationForFeature(ctx context.Context, feature *entities.FeatureFlag, userID string, attrs map[string]any) *entities.Decision {
	if decision := s.GetVariationForFeatureExperiment(ctx, feature, userID, attrs); decision != nil {
		return decision
	}

	if decision := s.GetVariationForFeatureRollout(ctx, feature, userID, attrs); decision != nil {
		s.logger.InfoContext(ctx, "user is bucketed into rollout for feature",
			slog.String("feature_key", feature.Key),
			slog.String("user_id", userID))
		return decision
	}

	s.logger.InfoContext(ctx, "user is not bucketed into rollout for feature",
		slog.String("feature_key", feature.Key),
		slog.String("user_id", userID))
	return nil
}

// GetVariationForFeatureExperiment tries the feature's experiments in order
// and returns the first one that assigns the user a variation. Mutually
// exclusive groups need no handling here: group bucketing already guarantees
// at most one member experiment can claim a given user.
func (s *Service) GetVariationForFeatureExperiment(ctx context.Context, feature *entities.FeatureFlag, userID string, attrs map[string]any) *entities.Decision {
	if len(feature.ExperimentIDs) == 0 {
		s.logger.DebugContext(ctx, "feature has no associated experiments",
			slog.String("feature_key", feature.Key))
		return nil
	}

	for _, experimentID := range feature.ExperimentIDs {
		exp, ok := s.config.ExperimentByID(experimentID)
		if !ok {
			s.logger.WarnContext(ctx, "feature experiment not found in configuration, skipping",
				slog.String("feature_key", feature.Key),
				slog.String("experiment_id", experimentID))
			continue
		}

		if variation := s.GetVariation(ctx, exp.Key, userID, attrs); variation != nil {
			return &entities.Decision{
				Experiment: exp,
				Variation:  variation,
				Source:     entities.SourceExperiment,
			}
		}
	}

	s.logger.InfoContext(ctx, "user not bucketed into any experiment for feature",
		slog.String("feature_key", feature.Key),
		slog.String("user_id", userID))
	return nil
}

// GetVariationForFeatureRollout walks the rollout's targeting rules in
// order. A rule whose audience matches but whose bucketing rejects the user
// is exhausted: evaluation jumps straight to the final "Everyone Else" rule,
// skipping any intermediate rules even when their audiences would match.
func (s *Service) GetVariationForFeatureRollout(ctx context.Context, feature *entities.FeatureFlag, userID string, attrs map[string]any) *entities.Decision {
	if feature.RolloutID == "" {
		s.logger.DebugContext(ctx, "feature has no rollout",
			slog.String("feature_key", feature.Key))
		return nil
	}

	rollout, ok := s.config.RolloutByID(feature.RolloutID)
	if !ok {
		s.logger.ErrorContext(ctx, "rollout not found in configuration",
			slog.String("feature_key", feature.Key),
			slog.String("rollout_id", feature.RolloutID))
		return nil
	}
	if len(rollout.Rules) == 0 {
		return nil
	}

	bucketingID := s.bucketingID(ctx, userID, attrs)

	for i := range rollout.Rules[:len(rollout.Rules)-1] {
		rule := &rollout.Rules[i]

		if result := condition.Evaluate(rule.AudienceConditions, attrs); result != condition.True {
			s.logger.DebugContext(ctx, "user does not meet conditions for targeting rule",
				slog.String("feature_key", feature.Key),
				slog.Int("rule_index", i+1),
				slog.String("audience_result", result.String()))
			continue
		}

		if variation := s.bucketer.Bucket(bucketingID, rule, s.config); variation != nil {
			return &entities.Decision{
				Experiment: rule,
				Variation:  variation,
				Source:     entities.SourceRollout,
			}
		}

		s.logger.DebugContext(ctx, "user excluded from targeting rule, falling back to everyone-else rule",
			slog.String("feature_key", feature.Key),
			slog.Int("rule_index", i+1),
			slog.String("user_id", userID))
		break
	}

	everyoneElse := &rollout.Rules[len(rollout.Rules)-1]
	if result := condition.Evaluate(everyoneElse.AudienceConditions, attrs); result != condition.True {
		s.logger.DebugContext(ctx, "user does not meet conditions for everyone-else rule",
			slog.String("feature_key", feature.Key),
			slog.String("audience_result", result.String()))
		return nil
	}

	variation := s.bucketer.Bucket(bucketingID, everyoneElse, s.config)
	if variation == nil {
		return nil
	}
	return &entities.Decision{
		Experiment: everyoneElse,
		Variation:  variation,
		Source:     entities.SourceRollout,
	}
}
