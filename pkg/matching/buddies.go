package matching

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// BuddyScore how well another member suits a profile as a buddy
type BuddyScore struct {
	UserID          string  `json:"userId"`
	Score           float64 `json:"score"`
	MutualInterests int     `json:"mutualInterests"`
}

// MatchScore the score as a whole percentage
func (s BuddyScore) MatchScore() int {
	return int(math.Round(s.Score * 100))
}

// BuddyMatcher ranks members for a profile
type BuddyMatcher struct {
	weights struct {
		interests   float64
		preferences float64
		location    float64
		languages   float64
		age         float64
	}
}

// NewBuddyMatcher creates a buddy matcher with the default weights
func NewBuddyMatcher() *BuddyMatcher {
	m := &BuddyMatcher{}
	m.weights.interests = 0.35
	m.weights.preferences = 0.2
	m.weights.location = 0.2
	m.weights.languages = 0.15
	m.weights.age = 0.1
	return m
}

// Match scores every candidate against user, best first. The user's own
// profile is skipped. Ties keep input order.
func (m *BuddyMatcher) Match(user *models.Profile, candidates []models.Profile) []BuddyScore {
	var scores []BuddyScore

	for _, candidate := range candidates {
		if candidate.UserID == user.UserID {
			continue
		}

		scores = append(scores, BuddyScore{
			UserID:          candidate.UserID,
			Score:           m.calculateMatchScore(user, &candidate),
			MutualInterests: countShared(user.Interests, candidate.Interests),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

func (m *BuddyMatcher) calculateMatchScore(p1, p2 *models.Profile) float64 {
	score := 0.0
	score += calculateCosineSimilarity(toVector(p1.Interests), toVector(p2.Interests)) * m.weights.interests
	score += calculateJaccard(normalize(p1.ActivityPreferences), normalize(p2.ActivityPreferences)) * m.weights.preferences
	score += m.calculateLocationSimilarity(p1.City, p2.City) * m.weights.location
	score += calculateJaccard(normalize(p1.LanguagePreferences), normalize(p2.LanguagePreferences)) * m.weights.languages
	score += m.calculateAgeCompatibility(p1.Age, p2.Age) * m.weights.age
	return score
}

func (m *BuddyMatcher) calculateLocationSimilarity(city1, city2 string) float64 {
	city1 = strings.TrimSpace(city1)
	city2 = strings.TrimSpace(city2)
	if city1 == "" || city2 == "" {
		return 0
	}
	if strings.EqualFold(city1, city2) {
		return 1
	}
	return 0
}

// calculateAgeCompatibility falls off with the age gap in steps of five years.
// Unknown ages score 0.
func (m *BuddyMatcher) calculateAgeCompatibility(age1, age2 string) float64 {
	a1, err1 := strconv.Atoi(strings.TrimSpace(age1))
	a2, err2 := strconv.Atoi(strings.TrimSpace(age2))
	if err1 != nil || err2 != nil || a1 <= 0 || a2 <= 0 {
		return 0
	}
	diff := math.Abs(float64(a1-a2)) / 5
	return math.Exp(-(diff * diff) / 2)
}

func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func toVector(values []string) map[string]float64 {
	vec := make(map[string]float64, len(values))
	for _, v := range normalize(values) {
		vec[v] = 1
	}
	return vec
}

func countShared(a, b []string) int {
	set := toVector(a)
	shared := 0
	for _, v := range normalize(b) {
		if set[v] > 0 {
			shared++
		}
	}
	return shared
}
