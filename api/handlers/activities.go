package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YongERong/wth-caifan-lovers/api/middleware"
	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/models"
	"github.com/YongERong/wth-caifan-lovers/pkg/matching"
)

var (
	errAlreadyJoined = errors.New("already joined")
	errActivityFull  = errors.New("activity is full")
)

type ActivityHandler struct {
	matcher *matching.Matcher
}

func NewActivityHandler() *ActivityHandler {
	return &ActivityHandler{
		matcher: matching.NewMatcher(),
	}
}

// ListActivities the activity catalog
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := database.ListActivities(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GetDeck the swipe deck, best matches for the user's profile first
func (h *ActivityHandler) GetDeck(c *gin.Context) {
	activities, err := database.ListActivities(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	profile, err := loadProfile(database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	ranked := h.matcher.Rank(&profile, activities)
	deck := make([]models.Activity, 0, len(ranked))
	for _, r := range ranked {
		deck = append(deck, r.Activity)
	}

	c.JSON(http.StatusOK, gin.H{
		"deck":   deck,
		"scores": ranked,
	})
}

// JoinActivity registers the user and credits the activity's points once
func (h *ActivityHandler) JoinActivity(c *gin.Context) {
	userID := middleware.UserID(c)
	activityID := c.Param("id")

	var activity models.Activity
	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", activityID).First(&activity).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ActivityRegistration{}).
			Where("user_id = ? AND activity_id = ?", userID, activityID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errAlreadyJoined
		}

		// the capacity check and the increment are one statement
		result := tx.Model(&models.Activity{}).
			Where("id = ? AND participants < max_participants", activityID).
			Update("participants", gorm.Expr("participants + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errActivityFull
		}

		if err := tx.Create(&models.ActivityRegistration{UserID: userID, ActivityID: activityID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyJoined
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", activity.Points)).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.PointTransaction{
			UserID:    userID,
			Amount:    activity.Points,
			Reason:    models.PointsActivity,
			Reference: activity.ID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("id = ?", activityID).First(&activity).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).First(&user).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	case errors.Is(err, errAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already joined this activity"})
		return
	case errors.Is(err, errActivityFull):
		c.JSON(http.StatusConflict, gin.H{"error": "This activity is full"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Joined %s", activity.Title),
		"activity": activity,
		"points":   user.Points,
	})
}
