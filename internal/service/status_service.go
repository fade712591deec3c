package service

import (
	"context"
	"fmt"

	"github.com/gollllden/Done/internal/clock"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/repository"
	"github.com/google/uuid"
)

const statusListLimit = 1000

type StatusService interface {
	CreateCheck(ctx context.Context, clientName string) (*models.StatusCheck, error)
	ListChecks(ctx context.Context) ([]models.StatusCheck, error)
}

type statusService struct {
	repo  repository.StatusCheckRepository
	clock clock.Clock
}

func NewStatusService(repo repository.StatusCheckRepository, clk clock.Clock) StatusService {
	return &statusService{repo: repo, clock: clk}
}

func (s *statusService) CreateCheck(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	check := &models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("create status check: %w", err)
	}
	return check, nil
}

func (s *statusService) ListChecks(ctx context.Context) ([]models.StatusCheck, error) {
	return s.repo.FindRecent(ctx, statusListLimit)
}
