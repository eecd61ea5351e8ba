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
)

var errInsufficientPoints = errors.New("insufficient points")

// GetRewards the reward catalog and the user's balance
func GetRewards(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(models.User)
	c.JSON(http.StatusOK, gin.H{
		"rewards": models.GetDefaultRewards(),
		"points":  user.Points,
	})
}

// RedeemReward spends points on a reward
func RedeemReward(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reward, ok := models.FindReward(req.RewardID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// conditional decrement so concurrent redemptions cannot overdraw
		result := tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, reward.Points).
			Update("points", gorm.Expr("points - ?", reward.Points))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errInsufficientPoints
		}

		if err := tx.Create(&models.PointTransaction{
			UserID:    userID,
			Amount:    -reward.Points,
			Reason:    models.PointsRedeem,
			Reference: reward.ID,
		}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).First(&user).Error
	})
	if errors.Is(err, errInsufficientPoints) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Not enough points for this reward"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward redeemed successfully",
		"reward":  reward,
		"points":  user.Points,
	})
}

// GetPointsHistory the user's points ledger, newest first
func GetPointsHistory(c *gin.Context) {
	userID := middleware.UserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var transactions []models.PointTransaction
	var count int64

	if err := database.DB.Model(&models.PointTransaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load points history"})
		return
	}
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load points history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        count,
		"page":         page,
		"pageSize":     pageSize,
		"transactions": transactions,
	})
}
