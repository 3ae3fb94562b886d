package neynar

// ScoreLevel buckets the [0,1] Neynar user score into five bands.
type ScoreLevel string

const (
	ScoreExcellent ScoreLevel = "excellent"
	ScoreGood      ScoreLevel = "good"
	ScoreAverage   ScoreLevel = "average"
	ScoreLow       ScoreLevel = "low"
	ScorePoor      ScoreLevel = "poor"
)

// GetScoreLevel returns the band for a score.
func GetScoreLevel(score float64) ScoreLevel {
	switch {
	case score >= 0.8:
		return ScoreExcellent
	case score >= 0.65:
		return ScoreGood
	case score >= 0.5:
		return ScoreAverage
	case score >= 0.35:
		return ScoreLow
	default:
		return ScorePoor
	}
}

var scoreColors = map[ScoreLevel]string{
	ScoreExcellent: "#10b981",
	ScoreGood:      "#22c55e",
	ScoreAverage:   "#eab308",
	ScoreLow:       "#f97316",
	ScorePoor:      "#ef4444",
}

var scoreLabels = map[ScoreLevel]string{
	ScoreExcellent: "Excellent",
	ScoreGood:      "Good",
	ScoreAverage:   "Average",
	ScoreLow:       "Low",
	ScorePoor:      "Poor",
}

var scoreDescriptions = map[ScoreLevel]string{
	ScoreExcellent: "Outstanding reputation! Top-tier contributor to the Farcaster ecosystem.",
	ScoreGood:      "Great reputation! You're a valued member of the community.",
	ScoreAverage:   "Decent reputation. Keep engaging positively to improve!",
	ScoreLow:       "Building reputation. More quality interactions will help.",
	ScorePoor:      "Low reputation. Focus on authentic engagement to grow.",
}

var scoreTips = map[ScoreLevel][]string{
	ScoreExcellent: {
		"You're doing amazing! Keep up the great work.",
		"Help others grow by engaging with newer members.",
		"Your endorsement carries significant weight.",
	},
	ScoreGood: {
		"Consistent quality engagement pays off.",
		"Connect with more established users.",
		"Share valuable insights and content.",
	},
	ScoreAverage: {
		"Post original, thoughtful content.",
		"Engage meaningfully in conversations.",
		"Avoid spam and low-effort posts.",
	},
	ScoreLow: {
		"Focus on quality over quantity.",
		"Build genuine connections.",
		"Be patient - scores update weekly.",
	},
	ScorePoor: {
		"Review community guidelines.",
		"Start fresh with authentic engagement.",
		"Avoid actions that seem automated.",
	},
}

// GetScoreColor returns the display color for a level.
func GetScoreColor(level ScoreLevel) string {
	return scoreColors[level]
}

// GetScoreLabel returns the human label for a level.
func GetScoreLabel(level ScoreLevel) string {
	return scoreLabels[level]
}

// GetScoreDescription returns the one-line description for a level.
func GetScoreDescription(level ScoreLevel) string {
	return scoreDescriptions[level]
}

// GetScoreTips returns improvement tips for a level.
func GetScoreTips(level ScoreLevel) []string {
	return scoreTips[level]
}
