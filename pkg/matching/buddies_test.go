package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YongERong/wth-caifan-lovers/models"
)

func buddyProfile(userID, city, age string, interests ...string) models.Profile {
	p := models.Profile{UserID: userID, ProfileForm: models.NewProfileForm()}
	p.City = city
	p.Age = age
	p.Interests = interests
	return p
}

func TestMatchPrefersSharedInterestsAndCity(t *testing.T) {
	me := buddyProfile("me", "Singapore", "70", "Gardening", "cooking", "chess")
	me.LanguagePreferences = []string{"English", "Mandarin"}

	candidates := []models.Profile{
		buddyProfile("far", "Johor Bahru", "90", "football"),
		me,
		buddyProfile("close", "singapore", "72", "gardening", "Cooking"),
		buddyProfile("some", "Singapore", "", "chess"),
	}
	candidates[2].LanguagePreferences = []string{"mandarin"}

	scores := NewBuddyMatcher().Match(&me, candidates)
	require.Len(t, scores, 3)
	assert.Equal(t, "close", scores[0].UserID)
	assert.Equal(t, 2, scores[0].MutualInterests)
	assert.Equal(t, "some", scores[1].UserID)
	assert.Equal(t, 1, scores[1].MutualInterests)
	assert.Equal(t, "far", scores[2].UserID)
	assert.Equal(t, 0, scores[2].MutualInterests)

	for _, s := range scores {
		assert.NotEqual(t, "me", s.UserID)
		assert.GreaterOrEqual(t, s.MatchScore(), 0)
		assert.LessOrEqual(t, s.MatchScore(), 100)
	}
}

func TestMatchIdenticalProfilesScoreFull(t *testing.T) {
	me := buddyProfile("me", "Singapore", "68", "walking")
	me.ActivityPreferences = []string{"outdoor"}
	me.LanguagePreferences = []string{"English"}
	twin := me
	twin.UserID = "twin"

	scores := NewBuddyMatcher().Match(&me, []models.Profile{twin})
	require.Len(t, scores, 1)
	assert.Equal(t, 100, scores[0].MatchScore())
}

func TestCalculateAgeCompatibility(t *testing.T) {
	m := NewBuddyMatcher()
	assert.Equal(t, 1.0, m.calculateAgeCompatibility("70", "70"))
	assert.Greater(t, m.calculateAgeCompatibility("70", "73"), m.calculateAgeCompatibility("70", "85"))
	assert.Equal(t, 0.0, m.calculateAgeCompatibility("", "70"))
	assert.Equal(t, 0.0, m.calculateAgeCompatibility("seventy", "70"))
}
