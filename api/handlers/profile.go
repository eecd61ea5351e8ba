package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YongERong/wth-caifan-lovers/api/middleware"
	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/models"
)

// loadProfile the user's profile, or a fresh unsaved one
func loadProfile(db *gorm.DB, userID string) (models.Profile, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{UserID: userID, ProfileForm: models.NewProfileForm()}, nil
	}
	return profile, err
}

// GetProfile the user's profile form
func GetProfile(c *gin.Context) {
	profile, err := loadProfile(database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile replaces the profile form
func UpdateProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	form := models.NewProfileForm()
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := loadProfile(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	profile.ProfileForm = form

	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// ApplyVoiceFields merges a field mapping from voice extraction into the stored form
func ApplyVoiceFields(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.ApplyFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := loadProfile(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	applied := profile.Apply(req.Fields)
	if len(applied) == 0 {
		applied = []string{}
	} else {
		if err := database.DB.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"applied": applied,
		"profile": profile,
	})
}
