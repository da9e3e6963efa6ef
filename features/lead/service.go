package lead

import (
	"context"
	"fmt"
	"log/slog"

	"taskforge/backend/internal/config"
	"taskforge/backend/internal/events"
)

type Notifier interface {
	Notify(ctx context.Context, topic, kind string, id int64)
}

type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = events.NewNotifier(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, notifier: notifier, logger: logger.With("component", "lead_service")}
}

func (s *Service) Create(ctx context.Context, l *Lead) error {
	if err := s.repo.Create(ctx, l); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	s.logger.InfoContext(ctx, "lead created", "id", l.ID)
	s.notifier.Notify(ctx, config.TopicLeadsChanged, events.KindCreated, l.ID)
	return nil
}

func (s *Service) List(ctx context.Context) ([]Lead, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Lead, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lead %d: %w", id, err)
	}
	return l, nil
}

func (s *Service) Update(ctx context.Context, l *Lead) error {
	if err := s.repo.Update(ctx, l); err != nil {
		return fmt.Errorf("update lead %d: %w", l.ID, err)
	}
	s.logger.InfoContext(ctx, "lead updated", "id", l.ID)
	s.notifier.Notify(ctx, config.TopicLeadsChanged, events.KindUpdated, l.ID)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "lead deleted", "id", id)
	s.notifier.Notify(ctx, config.TopicLeadsChanged, events.KindDeleted, id)
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
