package handler

import (
	"github.com/deppfellow/seedance-go/internal/server"
	"github.com/deppfellow/seedance-go/internal/service"
)

type Handlers struct {
	Health *HealthHandler // Health serves the /status endpoint.
	Tasks  *TaskHandler   // Tasks validates and relays generation tasks.
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Tasks:  NewTaskHandler(s, services.Tasks),
	}
}
