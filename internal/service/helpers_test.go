package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"drawguess_web/internal/models"
	"drawguess_web/internal/wordbank"
)

// stubGenerator 是測試用的生圖替身，記錄收到的提示語並依序回覆
type stubGenerator struct {
	mu        sync.Mutex
	err       error
	failFirst int // err 只套用在前 N 次呼叫；0 表示每次都失敗
	prompts   []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil && (g.failFirst == 0 || len(g.prompts) <= g.failFirst) {
		return "", g.err
	}
	return fmt.Sprintf("data:image/png;base64,img-%d", len(g.prompts)), nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// newTestService 建立一組彼此隔離的服務實例，不連資料庫
func newTestService(gen *stubGenerator) (*RoomService, *WebSocketManager) {
	hub := NewWebSocketManager()
	s := NewRoomService(hub, wordbank.NewBank(), gen, nil, nil)
	hub.rooms = s
	return s, hub
}

// dispatchSync 把指令排進房間迴圈並等它執行完，回傳處理結果
func dispatchSync(t *testing.T, s *RoomService, code string, playerID uint, msg models.ClientMessage) error {
	t.Helper()
	rt, ok := s.runtime(code)
	require.True(t, ok, "房間必須存在")
	return s.call(rt, func() error {
		return s.handleClientMessage(rt, playerID, msg)
	})
}

// setWordSync 直接指定房間謎底，讓劇本測試有決定性
func setWordSync(t *testing.T, s *RoomService, code, word string) {
	t.Helper()
	rt, ok := s.runtime(code)
	require.True(t, ok)
	require.NoError(t, s.call(rt, func() error {
		rt.room.Word = word
		return nil
	}))
}

// inspect 在房間迴圈上讀取狀態，避免和遊戲邏輯賽跑
func inspect(t *testing.T, s *RoomService, code string, fn func(room *models.Room)) {
	t.Helper()
	rt, ok := s.runtime(code)
	require.True(t, ok)
	require.NoError(t, s.call(rt, func() error {
		fn(rt.room)
		return nil
	}))
}

// attachProbe 掛上一個假的客戶端，攔截所有推播
func attachProbe(hub *WebSocketManager, code string, playerID uint) *Client {
	client := &Client{
		PlayerID: playerID,
		RoomCode: models.NormalizeRoomCode(code),
		SendChan: make(chan []byte, 256),
	}
	hub.addClient(client)
	return client
}

// drain 取出客戶端目前收到的所有推播並反序列化
func drain(t *testing.T, client *Client) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case payload := <-client.SendChan:
			var m map[string]any
			require.NoError(t, json.Unmarshal(payload, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

// findMessage 依 type 欄位找出第一則相符的推播
func findMessage(messages []map[string]any, msgType string) map[string]any {
	for _, m := range messages {
		if m["type"] == msgType {
			return m
		}
	}
	return nil
}

// lastMessage 依 type 欄位找出最後一則相符的推播（跳過中途的載入狀態）
func lastMessage(messages []map[string]any, msgType string) map[string]any {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i]["type"] == msgType {
			return messages[i]
		}
	}
	return nil
}
