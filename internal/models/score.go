package models

import (
	"gorm.io/gorm"
)

// HighScore 表示排行榜上的一筆累計成績，以玩家名稱為單位累加
type HighScore struct {
	gorm.Model
	PlayerName           string `gorm:"uniqueIndex;not null" json:"playerName"`
	Score                int    `gorm:"not null;default:0" json:"score"`
	GamesPlayed          int    `gorm:"not null;default:0" json:"gamesPlayed"`
	TotalGuessesCorrect  int    `gorm:"not null;default:0" json:"totalGuessesCorrect"`
	TotalDrawingsGuessed int    `gorm:"not null;default:0" json:"totalDrawingsGuessed"`
}

// 活動紀錄的動作類型
const (
	ActivityGameStart     = "game_start"
	ActivityGameEnd       = "game_end"
	ActivityWordAdd       = "word_add"
	ActivityImageGenerate = "image_generate"
)

// ActivityLog 表示一筆伺服器端的活動紀錄，供管理後台查詢
type ActivityLog struct {
	gorm.Model
	ActionType string `gorm:"type:varchar(50);not null" json:"actionType"`
	RoomCode   string `gorm:"type:varchar(10)" json:"roomCode,omitempty"`
	Details    string `gorm:"type:text" json:"details,omitempty"`
}
