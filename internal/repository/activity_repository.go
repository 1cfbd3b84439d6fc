package repository

import (
	"drawguess_web/internal/models"
	"drawguess_web/internal/storage"
)

type ActivityLogRepository interface {
	Create(entry *models.ActivityLog) error
	FindRecent(limit int) ([]models.ActivityLog, error)
}

type activityLogRepository struct {
	db *storage.PostgresDB
}

func NewActivityLogRepository(db *storage.PostgresDB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityLogRepository) FindRecent(limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
