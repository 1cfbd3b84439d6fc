package models

import (
	"strings"
	"time"
)

// 遊戲固定規則：每回合最多 3 次嘗試，每局最多 6 回合
const (
	MaxAttempts = 3
	MaxRounds   = 6
)

// RoomStatus 定義房間狀態的類型
type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting"
	RoomStatusPlaying RoomStatus = "playing"
	RoomStatusEnded   RoomStatus = "ended"
)

// RoomMode 定義遊戲模式：單人（系統擔任畫家）或雙人
type RoomMode string

const (
	RoomModeSingle RoomMode = "single"
	RoomModeMulti  RoomMode = "multi"
)

// Player 表示房間中的一位玩家
type Player struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsDrawer bool   `json:"isDrawer"`
	Score    int    `json:"score"` // 只增不減

	// 整局的累計戰績，遊戲結束時寫進排行榜
	GuessesCorrect  int `json:"-"`
	DrawingsGuessed int `json:"-"`
}

// Guess 表示一次猜題紀錄
type Guess struct {
	Text       string    `json:"text"`
	PlayerName string    `json:"playerName"`
	Timestamp  time.Time `json:"timestamp"`
	IsCorrect  bool      `json:"isCorrect"`
}

// Room 表示一個猜畫房間。純記憶體結構，不落地；
// 所有欄位的寫入都只發生在該房間的遊戲迴圈（見 service 包）
type Room struct {
	ID               uint
	Code             string // 6 碼、不分大小寫的房間代碼
	Status           RoomStatus
	Mode             RoomMode
	CurrentRound     int // 1-based
	Players          []*Player
	Word             string // 本回合的謎底，絕不能傳給猜題者
	PromptsSubmitted []string
	Guesses          []Guess
	CurrentImage     string // 空字串表示尚無圖片
	LastError        string // 本回合最後一次錯誤訊息，僅供前端顯示
	CreatedAt        time.Time
}

// Drawer 回傳目前的畫家。角色互斥性唯一的檢查點，
// 其他程式碼一律透過這裡取得畫家，不自行掃描 Players
func (r *Room) Drawer() *Player {
	for _, p := range r.Players {
		if p.IsDrawer {
			return p
		}
	}
	return nil
}

// PlayerByID 依玩家 ID 查找玩家
func (r *Room) PlayerByID(id uint) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AttemptsRemaining 計算本回合剩餘嘗試次數，永遠落在 [0, MaxAttempts]。
// 雙人模式下提示與猜題共用同一個額度（取兩者較大值），
// 單人模式下只由猜題次數決定
func (r *Room) AttemptsRemaining() int {
	used := len(r.Guesses)
	if r.Mode == RoomModeMulti && len(r.PromptsSubmitted) > used {
		used = len(r.PromptsSubmitted)
	}
	remaining := MaxAttempts - used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsCorrectGuess 判斷猜題是否命中謎底：去除前後空白後不分大小寫完全比對
func (r *Room) IsCorrectGuess(guess string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(r.Word))
}

// ResetRound 清除回合內的易變狀態，換上新謎底。
// 回合推進時呼叫；嘗試次數是由清空後的列表推導出來的，不需另行重設
func (r *Room) ResetRound(word string) {
	r.Word = word
	r.PromptsSubmitted = nil
	r.Guesses = nil
	r.CurrentImage = ""
	r.LastError = ""
}

// SwapRoles 交換所有玩家的畫家／猜題者角色（雙人模式回合推進時使用）
func (r *Room) SwapRoles() {
	for _, p := range r.Players {
		p.IsDrawer = !p.IsDrawer
	}
}

// NormalizeRoomCode 將房間代碼正規化為大寫，查表前一律先經過這裡
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
