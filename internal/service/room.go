package service

import (
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"drawguess_web/internal/imagegen"
	"drawguess_web/internal/models"
	"drawguess_web/internal/repository"
	"drawguess_web/internal/wordbank"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// roomRuntime 把房間資料和它專屬的執行迴圈綁在一起。
// 所有對 room 的讀寫都必須透過 actions 排進迴圈，依抵達順序逐一執行；
// 不同房間的迴圈彼此獨立，可以完全平行
type roomRuntime struct {
	room       *models.Room
	actions    chan func()
	done       chan struct{}
	generating bool // 圖片生成請求是否還在途中
}

func (rt *roomRuntime) run() {
	for {
		select {
		case fn := <-rt.actions:
			fn()
		case <-rt.done:
			return
		}
	}
}

// RoomService 是房間登錄表兼遊戲狀態機的進入點。
// 整個行程只建立一個實例，由 main 注入到需要它的元件，
// 不以全域變數的形式存在，測試可以各自建立隔離的實例
type RoomService struct {
	mu    sync.RWMutex
	rooms map[string]*roomRuntime

	nextRoomID   atomic.Uint64
	nextPlayerID atomic.Uint64

	hub       *WebSocketManager
	words     *wordbank.Bank
	generator imagegen.Generator
	scores    repository.ScoreRepository
	activity  repository.ActivityLogRepository
}

func NewRoomService(hub *WebSocketManager, words *wordbank.Bank, generator imagegen.Generator,
	scores repository.ScoreRepository, activity repository.ActivityLogRepository) *RoomService {
	return &RoomService{
		rooms:     make(map[string]*roomRuntime),
		hub:       hub,
		words:     words,
		generator: generator,
		scores:    scores,
		activity:  activity,
	}
}

// CreateRoomResult 是建房／加入房間回傳給客戶端的識別資訊
type CreateRoomResult struct {
	Code     string `json:"code"`
	PlayerID uint   `json:"playerId"`
}

// CreateRoom 建立新房間並讓建立者入座。
// 雙人模式建立者是畫家、房間處於 waiting；單人模式建立者是猜題者、
// 房間直接進入 playing（由系統扮演畫家）
func (s *RoomService) CreateRoom(playerName string, mode models.RoomMode) (*CreateRoomResult, error) {
	if mode != models.RoomModeSingle {
		mode = models.RoomModeMulti
	}

	player := &models.Player{
		ID:       uint(s.nextPlayerID.Add(1)),
		Name:     playerName,
		IsDrawer: mode == models.RoomModeMulti,
	}

	room := &models.Room{
		ID:           uint(s.nextRoomID.Add(1)),
		Status:       models.RoomStatusWaiting,
		Mode:         mode,
		CurrentRound: 1,
		Players:      []*models.Player{player},
		Word:         s.words.PickWord(""),
		CreatedAt:    time.Now(),
	}
	if mode == models.RoomModeSingle {
		room.Status = models.RoomStatusPlaying
	}

	rt := &roomRuntime{
		room:    room,
		actions: make(chan func(), 32),
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	room.Code = s.generateCodeLocked()
	s.rooms[room.Code] = rt
	s.mu.Unlock()

	go rt.run()

	log.Printf("created room %s (mode=%s) with word %q", room.Code, mode, room.Word)
	if mode == models.RoomModeSingle {
		s.logActivity(models.ActivityGameStart, room.Code, "single player game started")
	}

	return &CreateRoomResult{Code: room.Code, PlayerID: player.ID}, nil
}

// JoinRoom 讓第二位玩家以猜題者身分加入雙人房，人滿即開局
func (s *RoomService) JoinRoom(code, playerName string) (*CreateRoomResult, error) {
	rt, ok := s.runtime(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	var result *CreateRoomResult
	err := s.call(rt, func() error {
		room := rt.room
		if room.Mode != models.RoomModeMulti || room.Status == models.RoomStatusEnded {
			return ErrRoomFull
		}
		if len(room.Players) >= 2 {
			return ErrRoomFull
		}

		player := &models.Player{
			ID:   uint(s.nextPlayerID.Add(1)),
			Name: playerName,
		}
		room.Players = append(room.Players, player)

		if len(room.Players) == 2 {
			room.Status = models.RoomStatusPlaying
			log.Printf("game starting in room %s with word %q", room.Code, room.Word)
			s.logActivity(models.ActivityGameStart, room.Code, "multiplayer game started")
		}

		s.hub.PushRoomState(room, rt.generating)
		result = &CreateRoomResult{Code: room.Code, PlayerID: player.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetRoom 回傳房間的唯讀快照，供輪詢的客戶端使用。快照永遠不含謎底
func (s *RoomService) GetRoom(code string) (*models.GameStateView, error) {
	rt, ok := s.runtime(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	var view *models.GameStateView
	err := s.call(rt, func() error {
		view = rt.room.ViewFor(0, rt.generating)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveIfEmpty 在房間最後一條連線斷開後刪除房間並停掉它的迴圈。
// 由 WebSocket 層在連線登記表清空時呼叫
func (s *RoomService) RemoveIfEmpty(code string) {
	code = models.NormalizeRoomCode(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.rooms[code]
	if !ok {
		return
	}
	delete(s.rooms, code)
	close(rt.done)
	log.Printf("room %s deleted (empty)", code)
}

// RoomCount 回傳目前存活的房間數
func (s *RoomService) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// runtime 依代碼查找房間的執行環境
func (s *RoomService) runtime(code string) (*roomRuntime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.rooms[models.NormalizeRoomCode(code)]
	return rt, ok
}

// enqueue 把動作排進房間迴圈；房間已被刪除時回報 ErrRoomNotFound
func (s *RoomService) enqueue(rt *roomRuntime, fn func()) error {
	select {
	case rt.actions <- fn:
		return nil
	case <-rt.done:
		return ErrRoomNotFound
	}
}

// call 排入動作並同步等待結果，房間中途被刪除時不會卡死
func (s *RoomService) call(rt *roomRuntime, fn func() error) error {
	ch := make(chan error, 1)
	if err := s.enqueue(rt, func() { ch <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-ch:
		return err
	case <-rt.done:
		// 動作可能剛好在房間關閉前完成，先撈一次結果再放棄
		select {
		case err := <-ch:
			return err
		default:
			return ErrRoomNotFound
		}
	}
}

// generateCodeLocked 產生未被占用的 6 碼房間代碼，呼叫時必須持有 s.mu
func (s *RoomService) generateCodeLocked() string {
	for {
		b := make([]byte, 6)
		for i := range b {
			b[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
		}
		code := string(b)
		if _, exists := s.rooms[code]; !exists {
			return code
		}
	}
}

func (s *RoomService) logActivity(action, roomCode, details string) {
	if s.activity == nil {
		return
	}
	entry := &models.ActivityLog{ActionType: action, RoomCode: roomCode, Details: details}
	if err := s.activity.Create(entry); err != nil {
		log.Printf("activity log error: %v", err)
	}
}
