package service

import (
	"drawguess_web/internal/imagegen"
	"drawguess_web/internal/repository"
	"drawguess_web/internal/wordbank"
)

type Services struct {
	User      *UserService
	Room      *RoomService
	WebSocket *WebSocketManager
	WordBank  *wordbank.Bank
}

func NewServices(repos *repository.Repositories, words *wordbank.Bank, generator imagegen.Generator) *Services {
	wsManager := NewWebSocketManager()

	userService := NewUserService(repos.User)
	roomService := NewRoomService(wsManager, words, generator, repos.Score, repos.ActivityLog)
	wsManager.rooms = roomService

	return &Services{
		User:      userService,
		Room:      roomService,
		WebSocket: wsManager,
		WordBank:  words,
	}
}
