package neynar_test

import (
	"testing"

	"score-server/internal/neynar"

	"github.com/stretchr/testify/assert"
)

func TestGetScoreLevel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  neynar.ScoreLevel
	}{
		{"top of range", 1.0, neynar.ScoreExcellent},
		{"excellent boundary", 0.8, neynar.ScoreExcellent},
		{"just below excellent", 0.79, neynar.ScoreGood},
		{"good boundary", 0.65, neynar.ScoreGood},
		{"average boundary", 0.5, neynar.ScoreAverage},
		{"just below average", 0.49, neynar.ScoreLow},
		{"low boundary", 0.35, neynar.ScoreLow},
		{"just below low", 0.34, neynar.ScorePoor},
		{"zero", 0, neynar.ScorePoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, neynar.GetScoreLevel(tt.score))
		})
	}
}

func TestScoreLevelAttributes(t *testing.T) {
	levels := []neynar.ScoreLevel{
		neynar.ScoreExcellent,
		neynar.ScoreGood,
		neynar.ScoreAverage,
		neynar.ScoreLow,
		neynar.ScorePoor,
	}

	for _, level := range levels {
		assert.NotEmpty(t, neynar.GetScoreColor(level), level)
		assert.NotEmpty(t, neynar.GetScoreLabel(level), level)
		assert.NotEmpty(t, neynar.GetScoreDescription(level), level)
		assert.Len(t, neynar.GetScoreTips(level), 3, level)
	}
}
