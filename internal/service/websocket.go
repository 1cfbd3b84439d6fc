package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"drawguess_web/internal/models"
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn // WebSocket 連接
	PlayerID uint            // 玩家 ID
	RoomCode string          // 房間代碼
	SendChan chan []byte     // 消息發送通道，用於異步傳送消息
}

// WebSocketManager 管理所有的 WebSocket 連接和消息傳遞。
// 每次狀態變化都為房間裡的每位玩家重算一份專屬視圖再推送，
// 謎底只會出現在送給畫家的那一份裡
type WebSocketManager struct {
	clients    map[string]map[*Client]bool // 兩層 map: roomCode -> client -> bool
	clientsMux sync.RWMutex                // 用於保護 clients map 的讀寫鎖
	rooms      *RoomService                // 指令分派與空房清理的對口，於組裝時回填
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[string]map[*Client]bool),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求。
// 先驗證玩家確實屬於該房間（Attach 會推送初始視圖），驗證不過就直接斷線
func (m *WebSocketManager) HandleConnection(conn *websocket.Conn, roomCode string, playerID uint) error {
	client := &Client{
		Conn:     conn,
		PlayerID: playerID,
		RoomCode: models.NormalizeRoomCode(roomCode),
		SendChan: make(chan []byte, 256), // 設置緩衝大小為 256 的消息通道
	}

	if err := m.rooms.Attach(client); err != nil {
		return err
	}

	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		conn.Close()
	}()

	go m.writePump(client)
	m.readPump(client)
	return nil
}

// readPump 持續監聽並解析客戶端送來的指令，逐條分派進房間的遊戲迴圈
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("message parse error: %v", err)
			m.SendError(client, ErrInvalidMessage)
			continue
		}

		// 分派失敗只有一種情況：房間已經不存在，連線沒有繼續活著的理由
		if err := m.rooms.DispatchMessage(client, msg); err != nil {
			m.SendError(client, err)
			break
		}
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PushRoomState 為房間內每位已連線的玩家重算並推送他的專屬視圖
func (m *WebSocketManager) PushRoomState(room *models.Room, generating bool) {
	m.clientsMux.RLock()
	clients := make([]*Client, 0, len(m.clients[room.Code]))
	for client := range m.clients[room.Code] {
		clients = append(clients, client)
	}
	m.clientsMux.RUnlock()

	for _, client := range clients {
		m.PushStateTo(client, room.ViewFor(client.PlayerID, generating))
	}
}

// PushStateTo 把已算好的視圖送給單一客戶端
func (m *WebSocketManager) PushStateTo(client *Client, view *models.GameStateView) {
	payload, err := json.Marshal(view)
	if err != nil {
		log.Printf("view encoding error: %v", err)
		return
	}
	m.send(client, payload)
}

// PushEvent 向房間內所有客戶端廣播同一則遊戲事件
func (m *WebSocketManager) PushEvent(roomCode string, event *models.EventMessage) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("event encoding error: %v", err)
		return
	}

	m.clientsMux.RLock()
	clients := make([]*Client, 0, len(m.clients[roomCode]))
	for client := range m.clients[roomCode] {
		clients = append(clients, client)
	}
	m.clientsMux.RUnlock()

	for _, client := range clients {
		m.send(client, payload)
	}
}

// SendError 只把錯誤推給出錯的那一條連線，不驚動房間裡的其他人
func (m *WebSocketManager) SendError(client *Client, err error) {
	payload, encodeErr := json.Marshal(&models.ErrorMessage{Error: err.Error()})
	if encodeErr != nil {
		return
	}
	m.send(client, payload)
}

// send 以非阻塞方式投遞；客戶端消費太慢時視為斷線處理
func (m *WebSocketManager) send(client *Client, payload []byte) {
	select {
	case client.SendChan <- payload:
		// 消息成功加入發送隊列
	default:
		// 客戶端消息隊列已滿，關閉連接
		m.removeClient(client)
		client.Conn.Close()
	}
}

// addClient 安全地添加新的客戶端連接
func (m *WebSocketManager) addClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.RoomCode] == nil {
		m.clients[client.RoomCode] = make(map[*Client]bool)
	}
	m.clients[client.RoomCode][client] = true
}

// removeClient 安全地移除客戶端連接；
// 房間的連線表清空時通知登錄表把整個房間收掉
func (m *WebSocketManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	empty := false
	if clients, ok := m.clients[client.RoomCode]; ok {
		if _, registered := clients[client]; registered {
			delete(clients, client)
			if len(clients) == 0 {
				delete(m.clients, client.RoomCode)
				empty = true
			}
		}
	}
	m.clientsMux.Unlock()

	if empty && m.rooms != nil {
		m.rooms.RemoveIfEmpty(client.RoomCode)
	}
}

// RoomClientCount 獲取指定房間的在線客戶端數量
func (m *WebSocketManager) RoomClientCount(roomCode string) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()
	return len(m.clients[models.NormalizeRoomCode(roomCode)])
}
