package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/seedance-go/client"
	"github.com/deppfellow/seedance-go/generation"
)

// TaskClient is the part of the generation client the relay uses.
type TaskClient interface {
	Submit(ctx context.Context, req generation.Request) (*client.TaskCreated, error)
	GetTask(ctx context.Context, id string) (*client.Task, error)
	CancelTask(ctx context.Context, id string) error
}

type TaskService struct {
	client TaskClient
}

func NewTaskService(c TaskClient) *TaskService {
	return &TaskService{client: c}
}

// Create forwards an already validated request.
func (s *TaskService) Create(ctx context.Context, req generation.Request) (*client.TaskCreated, error) {
	logger := zerolog.Ctx(ctx)

	event := logger.Info().
		Str("model", req.Model()).
		Int("content_items", len(req.Content())).
		Str("service_tier", string(req.ServiceTier()))
	if d, ok := req.Duration(); ok {
		event = event.Int("duration", d)
	}
	event.Msg("forwarding generation task")

	created, err := s.client.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("task_id", created.ID).Msg("generation task accepted")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*client.Task, error) {
	return s.client.GetTask(ctx, id)
}

func (s *TaskService) Cancel(ctx context.Context, id string) error {
	if err := s.client.CancelTask(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("task_id", id).Msg("generation task cancelled")
	return nil
}
