package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"drawguess_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	wsManager *service.WebSocketManager
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager}
}

// HandleWebSocket 處理 WebSocket 連接請求。
// 連線以 (房間代碼, 玩家 ID) 識別；玩家不屬於該房間時直接關閉連線
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Query("playerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的玩家ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失敗時 gorilla 已回覆客戶端，不需要再寫 JSON
		return
	}

	if err := h.wsManager.HandleConnection(conn, c.Param("code"), uint(playerID)); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) || errors.Is(err, service.ErrPlayerNotInRoom) {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		}
		conn.Close()
	}
}
