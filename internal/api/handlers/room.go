package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"drawguess_web/internal/models"
	"drawguess_web/internal/service"
)

// RoomHandler 處理與猜畫房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom 處理創建新房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		PlayerName string `json:"playerName" binding:"required"`
		Mode       string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.roomService.CreateRoom(input.PlayerName, models.RoomMode(input.Mode))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建房間失敗"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// JoinRoom 處理加入房間的請求
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var input struct {
		PlayerName string `json:"playerName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.roomService.JoinRoom(c.Param("code"), input.PlayerName)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRoom 回傳房間快照供輪詢的客戶端使用，快照不含謎底
func (h *RoomHandler) GetRoom(c *gin.Context) {
	view, err := h.roomService.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}
