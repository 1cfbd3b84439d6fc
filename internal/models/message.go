package models

import "time"

// 客戶端可送出的消息類型。dispatch 時做窮舉比對，
// 未知的 type 會被明確拒絕而不是默默忽略
const (
	ClientMessagePrompt       = "prompt"
	ClientMessageGuess        = "guess"
	ClientMessageSetWord      = "setWord"
	ClientMessageGenerateWord = "generateWord"
)

// ClientMessage 代表一則從 WebSocket 收到的玩家指令
type ClientMessage struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt,omitempty"`
	Guess  string `json:"guess,omitempty"`
	Word   string `json:"word,omitempty"`
}

// 伺服器推播的消息類型
const (
	ServerMessageGameState     = "gameState"
	ServerMessageRoundComplete = "roundComplete"
	ServerMessageGameComplete  = "gameComplete"
	ServerMessageWrongGuess    = "wrongGuess"
)

// GameStateView 是針對單一玩家計算出來的房間視圖。
// Word 只會在送給畫家的那一份裡被填上，其他玩家永遠拿到空值
type GameStateView struct {
	Type          string    `json:"type"`
	Code          string    `json:"code"`
	Status        RoomStatus `json:"status"`
	Mode          RoomMode  `json:"mode"`
	CurrentRound  int       `json:"currentRound"`
	TotalRounds   int       `json:"totalRounds"`
	Players       []*Player `json:"players"`
	Word          string    `json:"word,omitempty"`
	AttemptsLeft  int       `json:"attemptsLeft"`
	CurrentImage  string    `json:"currentImage,omitempty"`
	Guesses       []Guess   `json:"guesses"`
	Generating    bool      `json:"generating"`
	Error         string    `json:"error,omitempty"`
}

// EventMessage 是一次性的遊戲事件通知（答對、答錯、遊戲結束）
type EventMessage struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	Word         string `json:"word,omitempty"`
	PointsEarned int    `json:"pointsEarned,omitempty"`
	AttemptsLeft int    `json:"attemptsLeft,omitempty"`
}

// ErrorMessage 只推給出錯的那一條連線，不影響房間內其他玩家
type ErrorMessage struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ViewFor 依玩家身分計算房間視圖。唯一允許夾帶謎底的出口。
// 回傳的是深拷貝：視圖可能在遊戲迴圈之外被序列化
func (r *Room) ViewFor(playerID uint, generating bool) *GameStateView {
	players := make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		players[i] = &cp
	}
	guesses := make([]Guess, len(r.Guesses))
	copy(guesses, r.Guesses)

	view := &GameStateView{
		Type:         ServerMessageGameState,
		Code:         r.Code,
		Status:       r.Status,
		Mode:         r.Mode,
		CurrentRound: r.CurrentRound,
		TotalRounds:  MaxRounds,
		Players:      players,
		AttemptsLeft: r.AttemptsRemaining(),
		CurrentImage: r.CurrentImage,
		Guesses:      guesses,
		Generating:   generating,
		Error:        r.LastError,
	}
	if p := r.PlayerByID(playerID); p != nil && p.IsDrawer {
		view.Word = r.Word
	}
	return view
}

// NewGuess 建立一筆帶有當下時間戳的猜題紀錄
func NewGuess(text, playerName string, correct bool) Guess {
	return Guess{
		Text:       text,
		PlayerName: playerName,
		Timestamp:  time.Now(),
		IsCorrect:  correct,
	}
}
