package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drawguess_web/internal/repository"
)

// LeaderboardHandler 處理排行榜與活動紀錄的查詢
type LeaderboardHandler struct {
	scores   repository.ScoreRepository
	activity repository.ActivityLogRepository
}

func NewLeaderboardHandler(scores repository.ScoreRepository, activity repository.ActivityLogRepository) *LeaderboardHandler {
	return &LeaderboardHandler{scores: scores, activity: activity}
}

// GetLeaderboard 回傳總分前 10 名
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	scores, err := h.scores.TopScores(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢排行榜"})
		return
	}

	c.JSON(http.StatusOK, scores)
}

// GetActivities 回傳最近的伺服器活動紀錄（管理後台用）
func (h *LeaderboardHandler) GetActivities(c *gin.Context) {
	logs, err := h.activity.FindRecent(100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法查詢活動紀錄"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
