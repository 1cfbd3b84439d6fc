package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"drawguess_web/internal/models"
	"drawguess_web/internal/repository"
	"drawguess_web/internal/wordbank"
)

// 計分規則：雙人模式猜中時猜題者 +10、畫家 +5；
// 單人模式依用掉的嘗試次數遞減，最低 1 分
const (
	guesserPoints = 10
	drawerPoints  = 5
)

// DispatchMessage 把一則玩家指令排進該房間的遊戲迴圈。
// 指令依抵達順序逐一執行；執行中的錯誤只會推回給出錯的那條連線
func (s *RoomService) DispatchMessage(client *Client, msg models.ClientMessage) error {
	rt, ok := s.runtime(client.RoomCode)
	if !ok {
		return ErrRoomNotFound
	}
	return s.enqueue(rt, func() {
		if err := s.handleClientMessage(rt, client.PlayerID, msg); err != nil {
			s.hub.SendError(client, err)
		}
	})
}

// handleClientMessage 是 inbound 指令的窮舉分派點，只在遊戲迴圈上執行
func (s *RoomService) handleClientMessage(rt *roomRuntime, playerID uint, msg models.ClientMessage) error {
	player := rt.room.PlayerByID(playerID)
	if player == nil {
		return ErrPlayerNotInRoom
	}

	switch msg.Type {
	case models.ClientMessagePrompt:
		return s.handlePrompt(rt, player, msg.Prompt)
	case models.ClientMessageGuess:
		return s.handleGuess(rt, player, msg.Guess)
	case models.ClientMessageSetWord:
		return s.handleSetWord(rt, player, msg.Word)
	case models.ClientMessageGenerateWord:
		return s.handleSetWord(rt, player, s.words.PickWord(""))
	default:
		return ErrInvalidMessage
	}
}

// handlePrompt 處理畫家送出的提示語（僅雙人模式；單人模式由系統觸發生圖）
func (s *RoomService) handlePrompt(rt *roomRuntime, player *models.Player, prompt string) error {
	room := rt.room
	if room.Status != models.RoomStatusPlaying {
		return ErrGameNotActive
	}
	if room.Mode != models.RoomModeMulti || !player.IsDrawer {
		return ErrNotYourTurn
	}
	if room.AttemptsRemaining() == 0 || len(room.PromptsSubmitted) >= models.MaxAttempts {
		return ErrNoAttemptsLeft
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrInvalidMessage
	}

	s.generateImage(rt, prompt)
	return nil
}

// generateImage 記下提示語、先廣播載入中的視圖，再呼叫生圖服務。
// 呼叫期間遊戲迴圈會停在這裡，後到的指令照抵達順序排隊。
// 不論生圖成敗，這次嘗試都已消耗，確保上游持續故障時回合仍會終結
func (s *RoomService) generateImage(rt *roomRuntime, prompt string) {
	room := rt.room
	room.PromptsSubmitted = append(room.PromptsSubmitted, prompt)
	room.LastError = ""
	rt.generating = true
	s.hub.PushRoomState(room, true)

	imageURL, err := s.generator.Generate(context.Background(), prompt)
	rt.generating = false

	if err != nil {
		room.LastError = "圖片生成失敗，本次嘗試已消耗"
		log.Printf("room %s: image generation failed: %v", room.Code, err)
		s.logActivity(models.ActivityImageGenerate, room.Code, "generation failed")
	} else {
		room.CurrentImage = imageURL
		s.logActivity(models.ActivityImageGenerate, room.Code, "generation succeeded")
	}

	s.hub.PushRoomState(room, false)
	s.settleAfterGeneration(rt)
}

// settleAfterGeneration 在每次生圖結束後檢查回合是否還走得下去。
// 雙人模式的提示與猜題共用額度：提示把額度耗盡時猜題者已無法出手，
// 回合必須在這裡強制收尾，否則房間會卡死等不到任何合法動作。
// 單人模式生圖失敗時改用下一個提示語變化重試，三個變化都失敗才收尾
func (s *RoomService) settleAfterGeneration(rt *roomRuntime) {
	room := rt.room
	if room.Status != models.RoomStatusPlaying {
		return
	}

	if room.Mode == models.RoomModeSingle {
		if room.CurrentImage != "" {
			return
		}
		if len(room.PromptsSubmitted) < models.MaxAttempts {
			s.ensureImage(rt)
			return
		}
		s.forceRoundEnd(rt)
		return
	}

	if room.AttemptsRemaining() == 0 {
		s.forceRoundEnd(rt)
	}
}

// forceRoundEnd 在沒人猜中的情況下收掉本回合：公布謎底、不給分、照樣推進
func (s *RoomService) forceRoundEnd(rt *roomRuntime) {
	room := rt.room
	s.hub.PushEvent(room.Code, &models.EventMessage{
		Type:    models.ServerMessageRoundComplete,
		Message: fmt.Sprintf("次數用完了，答案是「%s」", room.Word),
		Word:    room.Word,
	})
	s.advanceOrEnd(rt)
}

// ensureImage 在單人模式下補產圖片：連線建立、回合推進或猜錯之後，
// 只要本回合還有嘗試額度且沒有生圖在途，就用下一個提示語變化生一張
func (s *RoomService) ensureImage(rt *roomRuntime) {
	room := rt.room
	if room.Mode != models.RoomModeSingle || room.Status != models.RoomStatusPlaying {
		return
	}
	if rt.generating || room.AttemptsRemaining() == 0 {
		return
	}
	variations := wordbank.PromptVariations(room.Word)
	idx := len(room.PromptsSubmitted)
	if idx >= len(variations) {
		return
	}
	s.generateImage(rt, variations[idx])
}

// EnsureImage 供連線層在單人房的玩家接上時觸發第一張圖
func (s *RoomService) EnsureImage(code string) error {
	rt, ok := s.runtime(code)
	if !ok {
		return ErrRoomNotFound
	}
	return s.enqueue(rt, func() { s.ensureImage(rt) })
}

// handleGuess 處理一次猜題：比對、計分、推進回合或結束整局
func (s *RoomService) handleGuess(rt *roomRuntime, player *models.Player, guess string) error {
	room := rt.room
	if room.Status != models.RoomStatusPlaying {
		return ErrGameNotActive
	}
	if player.IsDrawer {
		return ErrNotYourTurn
	}
	if room.AttemptsRemaining() == 0 {
		return ErrNoAttemptsLeft
	}
	if room.CurrentImage == "" {
		return ErrNoImage
	}
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return ErrInvalidMessage
	}

	correct := room.IsCorrectGuess(guess)
	room.Guesses = append(room.Guesses, models.NewGuess(guess, player.Name, correct))

	switch {
	case correct:
		s.scoreRound(rt, player)
	case room.AttemptsRemaining() > 0:
		s.hub.PushEvent(room.Code, &models.EventMessage{
			Type:         models.ServerMessageWrongGuess,
			Message:      fmt.Sprintf("猜錯了，還剩 %d 次機會", room.AttemptsRemaining()),
			AttemptsLeft: room.AttemptsRemaining(),
		})
		s.hub.PushRoomState(room, rt.generating)
		s.ensureImage(rt) // 單人模式自動換下一張圖
	default:
		s.forceRoundEnd(rt)
	}
	return nil
}

// scoreRound 猜中謎底後的計分與回合收尾
func (s *RoomService) scoreRound(rt *roomRuntime, guesser *models.Player) {
	room := rt.room
	var message string
	var earned int

	if room.Mode == models.RoomModeMulti {
		drawer := room.Drawer()
		guesser.Score += guesserPoints
		guesser.GuessesCorrect++
		earned = guesserPoints
		drawer.Score += drawerPoints
		drawer.DrawingsGuessed++
		message = fmt.Sprintf("%s 猜對了！答案是「%s」：%s +%d 分、畫家 %s +%d 分",
			guesser.Name, room.Word, guesser.Name, guesserPoints, drawer.Name, drawerPoints)
	} else {
		// 單人模式沒有另一位畫家可以獎勵，改依用掉的嘗試次數遞減給分
		attemptsUsed := len(room.Guesses)
		earned = guesserPoints - 3*(attemptsUsed-1)
		if earned < 1 {
			earned = 1
		}
		guesser.Score += earned
		guesser.GuessesCorrect++
		message = fmt.Sprintf("猜對了！答案是「%s」，+%d 分", room.Word, earned)
	}

	s.hub.PushEvent(room.Code, &models.EventMessage{
		Type:         models.ServerMessageRoundComplete,
		Message:      message,
		Word:         room.Word,
		PointsEarned: earned,
	})
	s.advanceOrEnd(rt)
}

// advanceOrEnd 推進到下一回合，或在達到回合上限時結束整局
func (s *RoomService) advanceOrEnd(rt *roomRuntime) {
	room := rt.room

	if room.CurrentRound >= models.MaxRounds {
		s.endGame(rt)
		return
	}

	room.CurrentRound++
	if room.Mode == models.RoomModeMulti {
		room.SwapRoles()
	}
	room.ResetRound(s.words.PickWord(""))
	log.Printf("room %s: round %d started with word %q", room.Code, room.CurrentRound, room.Word)

	s.hub.PushRoomState(room, rt.generating)
	s.ensureImage(rt) // 單人模式的新回合立即補第一張圖
}

// endGame 結束整局：廣播總結、累計排行榜成績並留下活動紀錄。
// 房間保持 ended 狀態，等最後一條連線斷開後才從登錄表移除
func (s *RoomService) endGame(rt *roomRuntime) {
	room := rt.room
	room.Status = models.RoomStatusEnded

	parts := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		parts = append(parts, fmt.Sprintf("%s %d 分", p.Name, p.Score))
	}
	s.hub.PushEvent(room.Code, &models.EventMessage{
		Type:    models.ServerMessageGameComplete,
		Message: "遊戲結束！最終比分：" + strings.Join(parts, "、"),
	})
	s.hub.PushRoomState(room, false)

	if s.scores != nil {
		for _, p := range room.Players {
			result := repository.GameResult{
				PlayerName:      p.Name,
				Score:           p.Score,
				GuessesCorrect:  p.GuessesCorrect,
				DrawingsGuessed: p.DrawingsGuessed,
			}
			if err := s.scores.RecordResult(result); err != nil {
				log.Printf("room %s: high score save error for %s: %v", room.Code, p.Name, err)
			}
		}
	}
	s.logActivity(models.ActivityGameEnd, room.Code, "game completed after round "+fmt.Sprint(room.CurrentRound))
	log.Printf("room %s: game ended after round %d", room.Code, room.CurrentRound)
}

// handleSetWord 讓畫家在回合開始前自選或重抽謎底；
// 一旦出現第一次提示或第一次猜題，謎底就鎖定
func (s *RoomService) handleSetWord(rt *roomRuntime, player *models.Player, word string) error {
	room := rt.room
	if room.Status != models.RoomStatusPlaying {
		return ErrGameNotActive
	}
	if room.Mode != models.RoomModeMulti || !player.IsDrawer {
		return ErrNotYourTurn
	}
	if len(room.Guesses) > 0 || len(room.PromptsSubmitted) > 0 {
		return ErrWordLocked
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) < 2 {
		return ErrInvalidMessage
	}

	room.Word = word
	s.hub.PushRoomState(room, rt.generating)
	return nil
}

// Attach 在 WebSocket 連線建立時登記客戶端：驗證玩家屬於該房間、
// 加入連線表並立即推送他專屬的視圖；單人房順帶補第一張圖
func (s *RoomService) Attach(client *Client) error {
	rt, ok := s.runtime(client.RoomCode)
	if !ok {
		return ErrRoomNotFound
	}
	err := s.call(rt, func() error {
		if rt.room.PlayerByID(client.PlayerID) == nil {
			return ErrPlayerNotInRoom
		}
		s.hub.addClient(client)
		s.hub.PushStateTo(client, rt.room.ViewFor(client.PlayerID, rt.generating))
		return nil
	})
	if err != nil {
		return err
	}
	// 首圖的生成不能擋住連線流程，排進迴圈讓它照順序執行
	if rtRoomMode(rt) == models.RoomModeSingle {
		_ = s.enqueue(rt, func() { s.ensureImage(rt) })
	}
	return nil
}

// rtRoomMode 讀取房間模式。Mode 在建房後不再變動，不需經過遊戲迴圈
func rtRoomMode(rt *roomRuntime) models.RoomMode {
	return rt.room.Mode
}
