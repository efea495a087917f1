// Package gamification convertit les points accumulés en niveaux et attribue les points.
package gamification

import "math"

// RequiredScore retourne le score cumulé nécessaire pour atteindre level (L + L*5)
func RequiredScore(level int) int {
	return level + level*5
}

// CalculateLevel retourne le plus grand niveau atteint pour score.
// Le niveau 1 est le plancher, même quand score < RequiredScore(1).
func CalculateLevel(score int) int {
	level := 1
	for score >= RequiredScore(level+1) {
		level++
	}
	return level
}

// ScoreForNextLevel retourne le seuil du niveau suivant
func ScoreForNextLevel(currentLevel int) int {
	return RequiredScore(currentLevel + 1)
}

// LevelProgress retourne la progression (0-100) entre le seuil du niveau courant et le suivant
func LevelProgress(score, currentLevel int) float64 {
	floor := RequiredScore(currentLevel)
	ceil := ScoreForNextLevel(currentLevel)

	progress := float64(score-floor) / float64(ceil-floor) * 100
	return math.Max(0, math.Min(100, progress))
}

// Rank trophée et titre affichés pour un niveau
type Rank struct {
	MinLevel int    `json:"minLevel"`
	Trophy   string `json:"trophy"`
	Title    string `json:"title"`
}

// ranks est trié par MinLevel décroissant
var ranks = []Rank{
	{MinLevel: 50, Trophy: "🏆", Title: "Master"},
	{MinLevel: 35, Trophy: "🥇", Title: "Expert"},
	{MinLevel: 20, Trophy: "🥈", Title: "Scholar"},
	{MinLevel: 10, Trophy: "🥉", Title: "Contributor"},
	{MinLevel: 5, Trophy: "📘", Title: "Learner"},
	{MinLevel: 1, Trophy: "🌱", Title: "Newcomer"},
}

// RankFor retourne le trophée et le titre associés à level
func RankFor(level int) Rank {
	for _, r := range ranks {
		if level >= r.MinLevel {
			return r
		}
	}
	return ranks[len(ranks)-1]
}

// Progress résumé de progression d'un utilisateur
type Progress struct {
	UserID        string  `json:"userId"`
	Score         int     `json:"score"`
	Level         int     `json:"level"`
	NextLevelAt   int     `json:"nextLevelAt"`
	PointsToLevel int     `json:"pointsToLevel"`
	Percent       float64 `json:"percent"`
	Rank          Rank    `json:"rank"`
}

// ProgressFor calcule la progression à partir du score seul
func ProgressFor(userID string, score int) Progress {
	level := CalculateLevel(score)
	next := ScoreForNextLevel(level)
	return Progress{
		UserID:        userID,
		Score:         score,
		Level:         level,
		NextLevelAt:   next,
		PointsToLevel: next - score,
		Percent:       LevelProgress(score, level),
		Rank:          RankFor(level),
	}
}
