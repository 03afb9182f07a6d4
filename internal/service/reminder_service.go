package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
)

type ReminderService struct {
	repo   *repository.ReminderRepository
	logger *zap.Logger
}

func NewReminderService(repo *repository.ReminderRepository, logger *zap.Logger) *ReminderService {
	return &ReminderService{repo: repo, logger: logger}
}

func (s *ReminderService) Create(ctx context.Context, reminder *domain.Reminder) error {
	if err := s.repo.Create(ctx, reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	s.logger.Info("reminder created",
		zap.String("id", reminder.ID.String()),
		zap.String("title", reminder.Title))
	return nil
}

func (s *ReminderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, id uuid.UUID, updated *domain.Reminder) (*domain.Reminder, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.Notes = updated.Notes
	existing.DueDate = updated.DueDate
	existing.Done = updated.Done

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return existing, nil
}

func (s *ReminderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func (s *ReminderService) List(ctx context.Context, includeDone bool) ([]domain.Reminder, error) {
	return s.repo.List(ctx, includeDone)
}

// DueBefore returns open reminders due on or before the cutoff; the
// scheduled scan uses it to surface overdue work in the logs.
func (s *ReminderService) DueBefore(ctx context.Context, cutoff time.Time) ([]domain.Reminder, error) {
	return s.repo.ListDueBefore(ctx, cutoff)
}
