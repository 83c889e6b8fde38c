package resolve

import (
	"github.com/example/rosterguard/internal/models"
)

// Quality scoring tuning. A resolution starts at 100, loses points per
// record touched and per strategy invasiveness, and is only accepted
// automatically above the floor.
const (
	baseQuality         = 100.0
	modificationPenalty = 5.0
	minQualityScore     = 70.0
	maxAttempts         = 3
)

// strategyPenalty ranks strategies by how invasive they are.
func strategyPenalty(s models.ResolutionStrategy) float64 {
	switch s {
	case models.StrategyTimeAdjustment:
		return 10
	case models.StrategyEmployeeReplacement:
		return 15
	case models.StrategyRecordDeletion:
		return 20
	case models.StrategySegmentation:
		return 12
	case models.StrategyPriorityBased:
		return 8
	case models.StrategyShiftAdjustment:
		return 14
	case models.StrategyAutoRescheduling:
		return 18
	default:
		return 25
	}
}

// StrategyChain returns the ordered strategies tried for a conflict kind.
// The first entry is the kind's default strategy.
func StrategyChain(kind models.ConflictKind) []models.ResolutionStrategy {
	switch kind {
	case models.KindTime:
		return []models.ResolutionStrategy{
			models.StrategyTimeAdjustment,
			models.StrategyPriorityBased,
			models.StrategyRecordDeletion,
		}
	case models.KindSkill:
		return []models.ResolutionStrategy{
			models.StrategyEmployeeReplacement,
			models.StrategyShiftAdjustment,
		}
	case models.KindWorkHour:
		return []models.ResolutionStrategy{
			models.StrategySegmentation,
			models.StrategyPriorityBased,
		}
	case models.KindCapacity:
		return []models.ResolutionStrategy{
			models.StrategyShiftAdjustment,
			models.StrategyAutoRescheduling,
		}
	default:
		return []models.ResolutionStrategy{
			models.StrategyPriorityBased,
			models.StrategyRecordDeletion,
		}
	}
}

// DefaultStrategy returns the first strategy tried for a conflict kind.
func DefaultStrategy(kind models.ConflictKind) models.ResolutionStrategy {
	return StrategyChain(kind)[0]
}

// qualityScore rates a finished resolution on 0..100.
func qualityScore(strategy models.ResolutionStrategy, modifications int) float64 {
	score := baseQuality
	score -= float64(modifications) * modificationPenalty
	score -= strategyPenalty(strategy)
	if score < 0 {
		score = 0
	}
	return score
}
