package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"drawguess_web/internal/models"
	"drawguess_web/internal/repository"
	"drawguess_web/internal/wordbank"
)

// WordHandler 處理題庫維護的請求（管理員限定）
type WordHandler struct {
	words    *wordbank.Bank
	activity repository.ActivityLogRepository
}

func NewWordHandler(words *wordbank.Bank, activity repository.ActivityLogRepository) *WordHandler {
	return &WordHandler{words: words, activity: activity}
}

// GetCategories 回傳所有題庫分類
func (h *WordHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.words.Categories()})
}

// GetWords 回傳指定分類的所有單字
func (h *WordHandler) GetWords(c *gin.Context) {
	words, err := h.words.Words(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": words})
}

// AddCategory 新增題庫分類
func (h *WordHandler) AddCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.words.AddCategory(input.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分類新增成功"})
}

// AddWord 將單字加入指定分類
func (h *WordHandler) AddWord(c *gin.Context) {
	var input struct {
		Word string `json:"word" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.words.AddWord(c.Param("category"), input.Word); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, wordbank.ErrCategoryNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if h.activity != nil {
		_ = h.activity.Create(&models.ActivityLog{
			ActionType: models.ActivityWordAdd,
			Details:    c.Param("category") + ": " + input.Word,
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "單字新增成功"})
}
