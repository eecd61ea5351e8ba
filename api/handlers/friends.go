package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YongERong/wth-caifan-lovers/api/middleware"
	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/models"
	"github.com/YongERong/wth-caifan-lovers/pkg/matching"
)

const defaultSuggestions = 10

type FriendHandler struct {
	matcher *matching.BuddyMatcher
}

func NewFriendHandler() *FriendHandler {
	return &FriendHandler{
		matcher: matching.NewBuddyMatcher(),
	}
}

// loadBuddies the public view of each user in ids, keyed by user ID
func loadBuddies(db *gorm.DB, ids []string) (map[string]models.Buddy, error) {
	buddies := make(map[string]models.Buddy, len(ids))
	if len(ids) == 0 {
		return buddies, nil
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err := db.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}

	byUser := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	for _, u := range users {
		profile, ok := byUser[u.ID]
		if !ok {
			profile = models.Profile{UserID: u.ID, ProfileForm: models.NewProfileForm()}
		}
		buddies[u.ID] = models.NewBuddy(u, profile)
	}
	return buddies, nil
}

// friendshipsOf every friendship the user is part of, either side
func friendshipsOf(db *gorm.DB, userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := db.Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&friendships).Error
	return friendships, err
}

// findFriendship the row between two users, whichever of them asked
func findFriendship(db *gorm.DB, a, b string) (models.Friendship, error) {
	var f models.Friendship
	err := db.Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		First(&f).Error
	return f, err
}

// ListFriends the user's buddies and their pending requests
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID := middleware.UserID(c)

	friendships, err := friendshipsOf(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(userID))
	}
	people, err := loadBuddies(database.DB, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	buddies := []models.Buddy{}
	received := []models.Buddy{}
	sent := []models.Buddy{}
	for _, f := range friendships {
		b, ok := people[f.Other(userID)]
		if !ok {
			continue
		}
		b.Since = f.UpdatedAt
		switch {
		case f.Status == models.FriendshipAccepted:
			b.Relationship = models.RelationshipAccepted
			buddies = append(buddies, b)
		case f.AddresseeID == userID:
			b.Relationship = models.RelationshipReceived
			received = append(received, b)
		default:
			b.Relationship = models.RelationshipSent
			sent = append(sent, b)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"buddies":  buddies,
		"requests": received,
		"sent":     sent,
	})
}

// GetSuggestions members the user has no friendship with, best matches first
func (h *FriendHandler) GetSuggestions(c *gin.Context) {
	userID := middleware.UserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSuggestions)))
	if err != nil || limit < 1 || limit > 50 {
		limit = defaultSuggestions
	}

	friendships, err := friendshipsOf(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load suggestions"})
		return
	}
	exclude := []string{userID}
	for _, f := range friendships {
		exclude = append(exclude, f.Other(userID))
	}

	var users []models.User
	if err := database.DB.Where("id NOT IN ?", exclude).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load suggestions"})
		return
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var profiles []models.Profile
	if len(ids) > 0 {
		if err := database.DB.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load suggestions"})
			return
		}
	}
	byUser := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	candidates := make([]models.Profile, 0, len(users))
	for _, u := range users {
		p, ok := byUser[u.ID]
		if !ok {
			p = models.Profile{UserID: u.ID, ProfileForm: models.NewProfileForm()}
		}
		candidates = append(candidates, p)
	}

	me, err := loadProfile(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	scores := h.matcher.Match(&me, candidates)
	if len(scores) > limit {
		scores = scores[:limit]
	}
	suggestions := make([]models.BuddySuggestion, 0, len(scores))
	for _, s := range scores {
		suggestions = append(suggestions, models.BuddySuggestion{
			Buddy:           models.NewBuddy(byID[s.UserID], byUser[s.UserID]),
			MatchScore:      s.MatchScore(),
			MutualInterests: s.MutualInterests,
		})
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// RequestFriend asks another member to be a buddy. A request the other member
// already sent is accepted instead.
func (h *FriendHandler) RequestFriend(c *gin.Context) {
	userID := middleware.UserID(c)
	otherID := c.Param("id")

	if otherID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot befriend yourself"})
		return
	}

	var other models.User
	if err := database.DB.Where("id = ?", otherID).First(&other).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	existing, err := findFriendship(database.DB, userID, otherID)
	switch {
	case err == nil && existing.Status == models.FriendshipPending && existing.AddresseeID == userID:
		existing.Status = models.FriendshipAccepted
		if err := database.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Buddy request accepted", "friendship": existing})
		return
	case err == nil:
		c.JSON(http.StatusConflict, gin.H{"error": "Buddy request already exists"})
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send request"})
		return
	}

	friendship := models.Friendship{
		RequesterID: userID,
		AddresseeID: otherID,
		Status:      models.FriendshipPending,
	}
	if err := database.DB.Create(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Buddy request already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Buddy request sent", "friendship": friendship})
}

// AcceptFriend accepts a pending request the other member sent
func (h *FriendHandler) AcceptFriend(c *gin.Context) {
	userID := middleware.UserID(c)

	result := database.DB.Model(&models.Friendship{}).
		Where("requester_id = ? AND addressee_id = ? AND status = ?", c.Param("id"), userID, models.FriendshipPending).
		Update("status", models.FriendshipAccepted)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending request from this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Buddy request accepted"})
}

// RemoveFriend deletes the friendship with another member, pending or not
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID := middleware.UserID(c)
	otherID := c.Param("id")

	result := database.DB.
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", userID, otherID, otherID, userID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove buddy"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No friendship with this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Buddy removed"})
}
