package progression

import (
	"fmt"
	"math"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

const MaxLevel = 1000

// Progress is a display-ready snapshot of a points total.
type Progress struct {
	Level             int     `json:"level"`
	CumulativePoints  int     `json:"cumulative_points"`
	LevelFloor        int     `json:"level_floor"`
	NextLevelAt       int     `json:"next_level_at"`
	PointsToNextLevel int     `json:"points_to_next_level"`
	LevelProgress     float64 `json:"level_progress"`
}

// PointsForLevelUp is the cost of going from level to level+1.
func PointsForLevelUp(level int) (int, error) {
	if level < 1 {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidLevel, level)
	}
	return pointsForLevelUp(level), nil
}

// CumulativePointsAtLevel is the total needed to reach level from zero.
func CumulativePointsAtLevel(level int) (int, error) {
	if level < 1 {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidLevel, level)
	}
	return cumulativeAt(level), nil
}

func pointsForLevelUp(level int) int {
	return 40 + 15*(level-1)
}

// (L-1)*(25+7.5L) == (L-1)*(50+15L)/2; the product is always even.
func cumulativeAt(level int) int {
	return (level - 1) * (50 + 15*level) / 2
}

// CalculateLevel returns the highest level whose threshold is covered by points.
func CalculateLevel(points int) int {
	if points <= 0 {
		return 1
	}
	if points >= cumulativeAt(MaxLevel) {
		return MaxLevel
	}

	// Positive root of 7.5L² + 17.5L - (25 + points) = 0, then fix rounding.
	estimate := (-17.5 + math.Sqrt(17.5*17.5+30*(25+float64(points)))) / 15
	level := int(estimate)
	level = max(1, min(level, MaxLevel))

	for level < MaxLevel && cumulativeAt(level+1) <= points {
		level++
	}
	for level > 1 && cumulativeAt(level) > points {
		level--
	}
	return level
}

// PointsToNextLevel is zero at MaxLevel.
func PointsToNextLevel(points int) int {
	level := CalculateLevel(points)
	if level >= MaxLevel {
		return 0
	}
	return max(0, cumulativeAt(level+1)-points)
}

// LevelProgress is the consumed fraction of the current level's range, in [0,1].
func LevelProgress(points int) float64 {
	level := CalculateLevel(points)
	if level >= MaxLevel {
		return 1
	}
	floor := cumulativeAt(level)
	span := pointsForLevelUp(level)
	return min(max(float64(points-floor)/float64(span), 0), 1)
}

func Snapshot(points int) Progress {
	level := CalculateLevel(points)
	next := cumulativeAt(min(level+1, MaxLevel))
	return Progress{
		Level:             level,
		CumulativePoints:  points,
		LevelFloor:        cumulativeAt(level),
		NextLevelAt:       next,
		PointsToNextLevel: PointsToNextLevel(points),
		LevelProgress:     LevelProgress(points),
	}
}
