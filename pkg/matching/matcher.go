package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// ActivityScore how well an activity suits a profile
type ActivityScore struct {
	Activity models.Activity `json:"activity"`
	Score    float64         `json:"score"`
}

// categoryInterests interests each activity category serves
var categoryInterests = map[string][]string{
	"Exercise":      {"exercise", "walking", "yoga", "meditation"},
	"Arts & Crafts": {"painting", "crafts", "knitting"},
	"Social":        {"reading", "cards", "chess", "movies"},
	"Cooking":       {"cooking", "baking"},
	"Outdoor":       {"walking", "photography", "gardening", "travel"},
	"Wellness":      {"music", "singing", "meditation", "dancing"},
}

// categoryStyles indoor/outdoor/social/quiet tags per category
var categoryStyles = map[string][]string{
	"Exercise":      {"outdoor", "social"},
	"Arts & Crafts": {"indoor", "quiet"},
	"Social":        {"indoor", "social"},
	"Cooking":       {"indoor", "social"},
	"Outdoor":       {"outdoor", "quiet"},
	"Wellness":      {"indoor", "quiet"},
}

// difficulty tiers and mobility levels on one scale
var difficultyDemand = map[string]float64{
	"Beginner":     1,
	"All Levels":   1,
	"Intermediate": 2,
	"Advanced":     3,
}

var mobilityCapacity = map[string]float64{
	"wheelchair": 1,
	"low":        1,
	"moderate":   2,
	"high":       3,
}

// Matcher ranks activities for a profile
type Matcher struct {
	weights struct {
		interests   float64
		preferences float64
		mobility    float64
		capacity    float64
	}
}

// NewMatcher creates a matcher with the default weights
func NewMatcher() *Matcher {
	m := &Matcher{}
	m.weights.interests = 0.4
	m.weights.preferences = 0.3
	m.weights.mobility = 0.2
	m.weights.capacity = 0.1
	return m
}

// Rank scores every activity and sorts by score, best first. Ties keep input order.
// A nil profile ranks on capacity and difficulty alone.
func (m *Matcher) Rank(profile *models.Profile, activities []models.Activity) []ActivityScore {
	if profile == nil {
		profile = &models.Profile{}
	}

	scores := make([]ActivityScore, 0, len(activities))
	for _, a := range activities {
		scores = append(scores, ActivityScore{Activity: a, Score: m.calculateScore(profile, a)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

func (m *Matcher) calculateScore(p *models.Profile, a models.Activity) float64 {
	score := 0.0
	score += m.calculateInterestSimilarity(p.Interests, a) * m.weights.interests
	score += calculateJaccard(p.ActivityPreferences, categoryStyles[a.Category]) * m.weights.preferences
	score += m.calculateMobilityCompatibility(p.MobilityLevel, a.Difficulty) * m.weights.mobility
	score += calculateCapacity(a) * m.weights.capacity
	return score
}

// calculateInterestSimilarity cosine similarity between the profile's interests
// and the interests the activity serves
func (m *Matcher) calculateInterestSimilarity(interests []string, a models.Activity) float64 {
	if len(interests) == 0 {
		return 0
	}

	profileVec := make(map[string]float64)
	for _, interest := range interests {
		profileVec[strings.ToLower(interest)] = 1
	}

	activityVec := make(map[string]float64)
	for _, interest := range categoryInterests[a.Category] {
		activityVec[interest] = 1
	}
	text := strings.ToLower(a.Title + " " + a.Description)
	for interest := range profileVec {
		if strings.Contains(text, interest) {
			activityVec[interest] = 1
		}
	}

	return calculateCosineSimilarity(profileVec, activityVec)
}

// calculateMobilityCompatibility 1 when the profile can manage the difficulty,
// falling off with the shortfall otherwise
func (m *Matcher) calculateMobilityCompatibility(mobility, difficulty string) float64 {
	capacity, ok := mobilityCapacity[mobility]
	if !ok {
		capacity = mobilityCapacity["moderate"]
	}
	demand, ok := difficultyDemand[difficulty]
	if !ok {
		demand = 1
	}
	if capacity >= demand {
		return 1
	}
	diff := demand - capacity
	return math.Exp(-(diff * diff) / 2)
}

func calculateCapacity(a models.Activity) float64 {
	if a.MaxParticipants <= 0 {
		return 0
	}
	return float64(a.SpotsLeft()) / float64(a.MaxParticipants)
}

func calculateJaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	overlap := 0
	for _, v := range b {
		if set[v] {
			overlap++
		}
	}

	union := len(set) + len(b) - overlap
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}

func calculateCosineSimilarity(v1, v2 map[string]float64) float64 {
	dotProduct := 0.0
	norm1 := 0.0
	norm2 := 0.0

	for k, val1 := range v1 {
		if val2, ok := v2[k]; ok {
			dotProduct += val1 * val2
		}
		norm1 += val1 * val1
	}

	for _, val2 := range v2 {
		norm2 += val2 * val2
	}

	if norm1 == 0 || norm2 == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(norm1) * math.Sqrt(norm2))
}
