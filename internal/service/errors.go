package service

import "errors"

// 房間邏輯的錯誤分類。這些錯誤全部在 dispatch 邊界被攔下，
// 轉成只推給出錯連線的錯誤消息，絕不讓房間崩潰或牽連其他玩家
var (
	ErrRoomNotFound    = errors.New("房間不存在")
	ErrRoomFull        = errors.New("房間已滿")
	ErrPlayerNotInRoom = errors.New("玩家不在此房間")
	ErrNotYourTurn     = errors.New("現在輪不到你做這個動作")
	ErrNoAttemptsLeft  = errors.New("本回合已無剩餘嘗試次數")
	ErrGameNotActive   = errors.New("遊戲尚未開始或已結束")
	ErrNoImage         = errors.New("還沒有圖片可以猜")
	ErrWordLocked      = errors.New("本回合已經開始，不能再更換謎底")
	ErrInvalidMessage  = errors.New("無法解析的消息")
)
