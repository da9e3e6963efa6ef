package job

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
	return &Service{repo: repo, notifier: notifier, logger: logger.With("component", "job_service")}
}

func (s *Service) Create(ctx context.Context, j *Job) error {
	if err := s.repo.Create(ctx, j); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	s.logger.InfoContext(ctx, "job created", "id", j.ID, "price", j.Price)
	s.notifier.Notify(ctx, config.TopicJobsChanged, events.KindCreated, j.ID)
	return nil
}

func (s *Service) List(ctx context.Context) ([]Job, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Job, error) {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return j, nil
}

func (s *Service) Update(ctx context.Context, j *Job) error {
	if err := s.repo.Update(ctx, j); err != nil {
		return fmt.Errorf("update job %d: %w", j.ID, err)
	}
	s.logger.InfoContext(ctx, "job updated", "id", j.ID)
	s.notifier.Notify(ctx, config.TopicJobsChanged, events.KindUpdated, j.ID)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "job deleted", "id", id)
	s.notifier.Notify(ctx, config.TopicJobsChanged, events.KindDeleted, id)
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
