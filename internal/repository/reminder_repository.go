package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *ReminderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

func (r *ReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Reminder{}, "id = ?", id).Error
}

func (r *ReminderRepository) List(ctx context.Context, includeDone bool) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	query := r.db.WithContext(ctx).Model(&domain.Reminder{})
	if !includeDone {
		query = query.Where("done = ?", false)
	}
	err := query.Order("due_date ASC NULLS LAST, created_at ASC").Find(&reminders).Error
	return reminders, err
}

// ListDueBefore returns open reminders whose due date falls on or before
// the cutoff, for the scheduled due-date scan.
func (r *ReminderRepository) ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	err := r.db.WithContext(ctx).
		Where("done = ? AND due_date IS NOT NULL AND due_date <= ?", false, cutoff).
		Order("due_date ASC").
		Find(&reminders).Error
	return reminders, err
}
