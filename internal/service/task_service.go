package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

type TaskService struct {
	api *client.Client
}

func NewTaskService(api *client.Client) *TaskService {
	return &TaskService{api: api}
}

type taskRequest struct {
	Titre        string `json:"titre"`
	Description  string `json:"description,omitempty"`
	Statut       string `json:"statut,omitempty"`
	DateDebut    string `json:"dateDebut,omitempty"`
	DateEcheance string `json:"dateEcheance,omitempty"`
}

type taskStatusRequest struct {
	Statut string `json:"statut"`
}

func taskPath(id int64) string {
	return "/api/taches/" + strconv.FormatInt(id, 10)
}

func (s *TaskService) ListByProject(ctx context.Context, projectId int64) ([]models.Task, error) {
	body, err := s.api.Get(ctx, projectPath(projectId)+"/taches")
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	dtos, err := client.DecodeEnvelope[[]taskDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	return toTasks(dtos)
}

func (s *TaskService) Create(ctx context.Context, projectId int64, t models.Task) (*models.Task, error) {
	req := taskRequest{
		Titre:        t.Title,
		Description:  t.Description,
		Statut:       string(t.Status),
		DateDebut:    formatDate(t.StartDate),
		DateEcheance: formatDate(t.DueDate),
	}
	body, err := s.api.Post(ctx, projectPath(projectId)+"/taches", req)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	dto, err := client.DecodeEnvelope[taskDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse created task: %w", err)
	}
	created, err := toTask(dto)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, t models.Task) (*models.Task, error) {
	req := taskRequest{
		Titre:        t.Title,
		Description:  t.Description,
		Statut:       string(t.Status),
		DateDebut:    formatDate(t.StartDate),
		DateEcheance: formatDate(t.DueDate),
	}
	body, err := s.api.Put(ctx, taskPath(id), req)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	dto, err := client.DecodeEnvelope[taskDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse updated task: %w", err)
	}
	updated, err := toTask(dto)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus hits the dedicated status endpoint rather than the full
// update, so the server can keep its denormalized counters in step.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	body, err := s.api.Patch(ctx, taskPath(id)+"/statut", taskStatusRequest{Statut: string(status)})
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	dto, err := client.DecodeEnvelope[taskDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse updated task: %w", err)
	}
	updated, err := toTask(dto)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.api.Delete(ctx, taskPath(id)); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskService) Assign(ctx context.Context, taskId, userId int64) error {
	path := taskPath(taskId) + "/assigner/" + strconv.FormatInt(userId, 10)
	if _, err := s.api.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("assign task: %w", err)
	}
	return nil
}

func (s *TaskService) Unassign(ctx context.Context, taskId, userId int64) error {
	path := taskPath(taskId) + "/assigner/" + strconv.FormatInt(userId, 10)
	if _, err := s.api.Delete(ctx, path); err != nil {
		return fmt.Errorf("unassign task: %w", err)
	}
	return nil
}
