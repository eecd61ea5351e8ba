package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YongERong/wth-caifan-lovers/models"
)

func TestRankPrefersMatchingInterests(t *testing.T) {
	profile := &models.Profile{ProfileForm: models.NewProfileForm()}
	profile.Interests = []string{"cooking", "baking"}
	profile.ActivityPreferences = []string{"indoor", "social"}
	profile.MobilityLevel = "high"

	ranked := NewMatcher().Rank(profile, models.GetDefaultActivities())
	require.Len(t, ranked, 6)
	assert.Equal(t, "Cooking Workshop: Asian Delights", ranked[0].Activity.Title)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankPenalisesDifficultyForLowMobility(t *testing.T) {
	m := NewMatcher()
	assert.Equal(t, 1.0, m.calculateMobilityCompatibility("low", "Beginner"))
	assert.Less(t, m.calculateMobilityCompatibility("wheelchair", "Intermediate"), 1.0)
	assert.Equal(t, 1.0, m.calculateMobilityCompatibility("", "All Levels"))
}

func TestRankWithoutProfileIsStable(t *testing.T) {
	activities := []models.Activity{
		{ID: "a", Title: "A", Difficulty: "Beginner", MaxParticipants: 10, Participants: 5},
		{ID: "b", Title: "B", Difficulty: "Beginner", MaxParticipants: 10, Participants: 5},
		{ID: "c", Title: "C", Difficulty: "Beginner", MaxParticipants: 10, Participants: 0},
	}

	ranked := NewMatcher().Rank(nil, activities)
	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Activity.ID)
	assert.Equal(t, "a", ranked[1].Activity.ID)
	assert.Equal(t, "b", ranked[2].Activity.ID)
}

func TestCalculateJaccard(t *testing.T) {
	assert.Equal(t, 0.0, calculateJaccard(nil, []string{"indoor"}))
	assert.InDelta(t, 1.0/3.0, calculateJaccard([]string{"indoor", "social"}, []string{"indoor", "quiet"}), 1e-9)
	assert.Equal(t, 1.0, calculateJaccard([]string{"indoor"}, []string{"indoor"}))
}
