package service

import (
	"github.com/deppfellow/seedance-go/internal/server"
)

type Services struct {
	Tasks *TaskService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Tasks: NewTaskService(s.Client),
	}
}
