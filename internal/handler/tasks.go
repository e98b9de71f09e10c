package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/seedance-go/client"
	"github.com/deppfellow/seedance-go/generation"
	"github.com/deppfellow/seedance-go/internal/server"
	"github.com/deppfellow/seedance-go/internal/service"
	"github.com/deppfellow/seedance-go/validation"
)

var engine = validation.MustEngine()

// GenerationPayload is a raw create-task body. Binding keeps the bytes;
// Validate runs the strict decoder and every request check on them.
type GenerationPayload struct {
	raw    []byte
	result generation.Result
}

func (p *GenerationPayload) UnmarshalJSON(b []byte) error {
	p.raw = append(p.raw[:0], b...)
	return nil
}

func (p *GenerationPayload) Validate() error {
	p.result = generation.ValidateJSON(p.raw)
	return p.result.Err()
}

// Request returns the normalized request. Only meaningful after a
// successful Validate.
func (p *GenerationPayload) Request() generation.Request {
	return p.result.Request
}

// TaskIDPayload addresses a single task by path.
type TaskIDPayload struct {
	ID string `param:"id" validate:"required,max=128"`
}

func (p *TaskIDPayload) Validate() error {
	if vs := engine.Struct(p); len(vs) > 0 {
		return vs
	}
	return nil
}

// ValidateResponse is the dry-run answer.
type ValidateResponse struct {
	Valid   bool               `json:"valid"`
	Request generation.Request `json:"request"`
}

type TaskHandler struct {
	Handler
	tasks *service.TaskService
}

func NewTaskHandler(s *server.Server, tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{
		Handler: NewHandler(s),
		tasks:   tasks,
	}
}

func newGenerationPayload() *GenerationPayload { return &GenerationPayload{} }
func newTaskIDPayload() *TaskIDPayload         { return &TaskIDPayload{} }

func (h *TaskHandler) CreateTask() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *GenerationPayload) (*client.TaskCreated, error) {
		return h.tasks.Create(c.Request().Context(), req.Request())
	}, http.StatusCreated, newGenerationPayload)
}

func (h *TaskHandler) ValidateTask() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *GenerationPayload) (ValidateResponse, error) {
		return ValidateResponse{Valid: true, Request: req.Request()}, nil
	}, http.StatusOK, newGenerationPayload)
}

func (h *TaskHandler) GetTask() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *TaskIDPayload) (*client.Task, error) {
		return h.tasks.Get(c.Request().Context(), req.ID)
	}, http.StatusOK, newTaskIDPayload)
}

func (h *TaskHandler) CancelTask() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *TaskIDPayload) error {
		return h.tasks.Cancel(c.Request().Context(), req.ID)
	}, http.StatusNoContent, newTaskIDPayload)
}
