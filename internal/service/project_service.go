package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
)

type ProjectService struct {
	repo   *repository.ProjectRepository
	logger *zap.Logger
}

func NewProjectService(repo *repository.ProjectRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, project *domain.Project) error {
	if project.Status == "" {
		project.Status = domain.ProjectStatusPlanning
	}
	for i := range project.Tasks {
		project.Tasks[i].Position = i
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("id", project.ID.String()),
		zap.String("name", project.Name))
	return nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, updated *domain.Project) (*domain.Project, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.ClientName = updated.ClientName
	existing.Location = updated.Location
	existing.Status = updated.Status
	existing.Notes = updated.Notes
	existing.StartDate = updated.StartDate
	existing.EndDate = updated.EndDate

	tasks := make([]domain.ProjectTask, len(updated.Tasks))
	copy(tasks, updated.Tasks)
	for i := range tasks {
		tasks[i].ProjectID = existing.ID
		tasks[i].Position = i
	}
	existing.Tasks = tasks

	if existing.Status == "" {
		existing.Status = domain.ProjectStatusPlanning
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("project updated", zap.String("id", existing.ID.String()))
	return existing, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.logger.Info("project deleted", zap.String("id", id.String()))
	return nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, status *domain.ProjectStatus, search string) ([]domain.Project, int64, error) {
	return s.repo.List(ctx, page, pageSize, status, search)
}
