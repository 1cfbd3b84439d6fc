package repository

import "drawguess_web/internal/storage"

type Repositories struct {
	User        UserRepository
	Score       ScoreRepository
	ActivityLog ActivityLogRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Score:       NewScoreRepository(db),
		ActivityLog: NewActivityLogRepository(db),
	}
}
