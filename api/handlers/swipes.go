package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/api/middleware"
	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/models"
	"github.com/YongERong/wth-caifan-lovers/pkg/metrics"
	"github.com/YongERong/wth-caifan-lovers/pkg/swipe"
)

// SwipeHandler records and manages swipe history
type SwipeHandler struct {
	store  database.SwipeStore
	ids    *swipe.IDMap
	logger *zap.Logger
}

func NewSwipeHandler(store database.SwipeStore, ids *swipe.IDMap, logger *zap.Logger) *SwipeHandler {
	return &SwipeHandler{store: store, ids: ids, logger: logger}
}

// resolveActivityID accepts a store identifier or a legacy integer id
func (h *SwipeHandler) resolveActivityID(raw string) (string, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return h.ids.External(n)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", errors.New("activityId must be a UUID or a legacy activity number")
	}
	return raw, nil
}

// CreateSwipe stores one like/pass decision
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	var req models.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := models.ParseSwipeAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activityID, err := h.resolveActivityID(req.ActivityID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := models.SwipeDecision{
		SwiperID:   middleware.UserID(c),
		ActivityID: activityID,
		Action:     action,
	}
	metrics.SwipeCommitted(string(action))
	if err := h.store.Insert(c.Request.Context(), &decision); err != nil {
		metrics.SwipePersistFailed()
		h.logger.Error("failed to save swipe", zap.String("swiper_id", decision.SwiperID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save swipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"swipe": decision})
}

// ListSwipes the user's history joined with activity cards, newest first.
// filter=like|pass narrows the items; stats always cover the full history.
func (h *SwipeHandler) ListSwipes(c *gin.Context) {
	filter := c.DefaultQuery("filter", "all")
	if filter != "all" && !models.SwipeAction(filter).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be all, like or pass"})
		return
	}

	decisions, err := h.store.ListBySwiper(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("failed to load swipe history", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load swipe history"})
		return
	}

	ids := make([]string, 0, len(decisions))
	for _, d := range decisions {
		ids = append(ids, d.ActivityID)
	}
	activities, err := database.ActivitiesByID(database.DB, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	items := make([]models.SwipeHistoryItem, 0, len(decisions))
	for _, d := range decisions {
		if action, err := models.ParseSwipeAction(string(d.Action)); err == nil {
			d.Action = action
		}
		if filter != "all" && string(d.Action) != filter {
			continue
		}
		activity, ok := activities[d.ActivityID]
		if !ok {
			activity = models.UnknownActivity(d.ActivityID)
		}
		// older clients key cards by their legacy number
		if activity.Number == 0 {
			if n, ok := h.ids.Internal(d.ActivityID); ok {
				activity.Number = n
			}
		}
		items = append(items, models.SwipeHistoryItem{SwipeDecision: d, Activity: activity})
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"stats": models.NewSwipeStats(decisions),
	})
}

// DeleteSwipe removes one decision
func (h *SwipeHandler) DeleteSwipe(c *gin.Context) {
	err := h.store.DeleteByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Swipe not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to delete swipe", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete swipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Swipe deleted"})
}

// ClearSwipes removes the user's whole history
func (h *SwipeHandler) ClearSwipes(c *gin.Context) {
	n, err := h.store.DeleteBySwiper(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("failed to clear swipe history", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to clear swipe history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Swipe history cleared", "deleted": n})
}
