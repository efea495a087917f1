package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredScore(t *testing.T) {
	for level := 1; level <= 500; level++ {
		assert.Equal(t, 6*level, RequiredScore(level))
		assert.Greater(t, RequiredScore(level+1), RequiredScore(level))
	}
}

func TestCalculateLevelFloorIsOne(t *testing.T) {
	assert.Equal(t, 1, CalculateLevel(0))
	assert.Equal(t, 1, CalculateLevel(5))
	assert.Equal(t, 1, CalculateLevel(6))
	assert.Equal(t, 1, CalculateLevel(11))
}

func TestCalculateLevelThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{12, 2},
		{15, 2},
		{17, 2},
		{18, 3},
		{59, 9},
		{60, 10},
		{300, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateLevel(tt.score), "score=%d", tt.score)
	}
}

func TestCalculateLevelIsMonotonic(t *testing.T) {
	prev := CalculateLevel(0)
	for score := 1; score <= 2000; score++ {
		level := CalculateLevel(score)
		assert.GreaterOrEqual(t, level, 1)
		assert.GreaterOrEqual(t, level, prev, "score=%d", score)
		prev = level
	}
}

func TestScoreForNextLevel(t *testing.T) {
	assert.Equal(t, 12, ScoreForNextLevel(1))
	assert.Equal(t, 18, ScoreForNextLevel(2))
}

func TestLevelProgressIsClamped(t *testing.T) {
	for level := 1; level <= 30; level++ {
		for score := -50; score <= 400; score += 7 {
			p := LevelProgress(score, level)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
}

func TestLevelProgressInterpolates(t *testing.T) {
	assert.InDelta(t, 0.0, LevelProgress(12, 2), 1e-9)
	assert.InDelta(t, 50.0, LevelProgress(15, 2), 1e-9)
	assert.InDelta(t, 100.0, LevelProgress(18, 2), 1e-9)
	// score 0 est sous le seuil du niveau 1
	assert.InDelta(t, 0.0, LevelProgress(0, 1), 1e-9)
}

func TestRankFor(t *testing.T) {
	assert.Equal(t, "Newcomer", RankFor(1).Title)
	assert.Equal(t, "Newcomer", RankFor(4).Title)
	assert.Equal(t, "Learner", RankFor(5).Title)
	assert.Equal(t, "Contributor", RankFor(19).Title)
	assert.Equal(t, "Scholar", RankFor(20).Title)
	assert.Equal(t, "Expert", RankFor(49).Title)
	assert.Equal(t, "🏆", RankFor(120).Trophy)
	assert.Equal(t, "Newcomer", RankFor(0).Title)
}

func TestProgressFor(t *testing.T) {
	p := ProgressFor("u1", 15)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 18, p.NextLevelAt)
	assert.Equal(t, 3, p.PointsToLevel)
	assert.InDelta(t, 50.0, p.Percent, 1e-9)
	assert.Equal(t, "Newcomer", p.Rank.Title)
}
