package repository

import (
	"errors"

	"gorm.io/gorm"

	"drawguess_web/internal/models"
	"drawguess_web/internal/storage"
)

// GameResult 是一局結束時要累計進排行榜的單一玩家成績
type GameResult struct {
	PlayerName      string
	Score           int
	GuessesCorrect  int
	DrawingsGuessed int
}

type ScoreRepository interface {
	RecordResult(result GameResult) error
	TopScores(limit int) ([]models.HighScore, error)
}

type scoreRepository struct {
	db *storage.PostgresDB
}

func NewScoreRepository(db *storage.PostgresDB) ScoreRepository {
	return &scoreRepository{db: db}
}

// RecordResult 以玩家名稱累加成績；首次出現時建立新紀錄
func (r *scoreRepository) RecordResult(result GameResult) error {
	var score models.HighScore
	err := r.db.Where("player_name = ?", result.PlayerName).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		score = models.HighScore{PlayerName: result.PlayerName}
	} else if err != nil {
		return err
	}

	score.Score += result.Score
	score.GamesPlayed++
	score.TotalGuessesCorrect += result.GuessesCorrect
	score.TotalDrawingsGuessed += result.DrawingsGuessed

	return r.db.Save(&score).Error
}

// TopScores 依總分由高到低查詢排行榜
func (r *scoreRepository) TopScores(limit int) ([]models.HighScore, error) {
	var scores []models.HighScore
	err := r.db.Order("score DESC").Limit(limit).Find(&scores).Error
	return scores, err
}
