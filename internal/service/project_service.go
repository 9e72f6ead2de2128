package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

type ProjectService struct {
	api *client.Client
	now func() time.Time
}

func NewProjectService(api *client.Client) *ProjectService {
	return &ProjectService{api: api, now: time.Now}
}

type projectRequest struct {
	Nom         string `json:"nom"`
	Description string `json:"description,omitempty"`
	DateDebut   string `json:"dateDebut,omitempty"`
	DateFin     string `json:"dateFin,omitempty"`
}

func projectPath(id int64) string {
	return "/api/projets/" + strconv.FormatInt(id, 10)
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	body, err := s.api.Get(ctx, "/api/projets")
	if err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}
	dtos, err := client.DecodeEnvelope[[]projectDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	return toProjects(dtos)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	body, err := s.api.Get(ctx, projectPath(id))
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	dto, err := client.DecodeEnvelope[projectDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	p, err := toProject(dto)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetComplete calls the combined endpoint returning the project with
// its members, tasks, messages and stats in one payload. The endpoint
// is optional server-side; callers fall back when it fails.
func (s *ProjectService) GetComplete(ctx context.Context, id int64) (*models.CompleteProject, error) {
	body, err := s.api.Get(ctx, projectPath(id)+"/complet")
	if err != nil {
		return nil, fmt.Errorf("get complete project: %w", err)
	}
	dto, err := client.DecodeEnvelope[completeProjectDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse complete project: %w", err)
	}

	project, err := toProject(dto.Projet)
	if err != nil {
		return nil, err
	}
	tasks, err := toTasks(dto.Taches)
	if err != nil {
		return nil, err
	}
	messages, err := toMessages(dto.Messages)
	if err != nil {
		return nil, err
	}
	members := toMembers(dto.Membres)

	cp := &models.CompleteProject{
		Project:  project,
		Members:  members,
		Tasks:    tasks,
		Messages: messages,
	}
	if dto.Statistiques != nil {
		cp.Stats = toStats(*dto.Statistiques)
	} else {
		cp.Stats = models.ComputeStats(project, tasks, members, s.now())
	}
	return cp, nil
}

func (s *ProjectService) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	req := projectRequest{
		Nom:         p.Name,
		Description: p.Description,
		DateDebut:   formatDate(p.StartDate),
		DateFin:     formatDate(p.EndDate),
	}
	body, err := s.api.Post(ctx, "/api/projets", req)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	dto, err := client.DecodeEnvelope[projectDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse created project: %w", err)
	}
	created, err := toProject(dto)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, p models.Project) (*models.Project, error) {
	req := projectRequest{
		Nom:         p.Name,
		Description: p.Description,
		DateDebut:   formatDate(p.StartDate),
		DateFin:     formatDate(p.EndDate),
	}
	body, err := s.api.Put(ctx, projectPath(id), req)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	dto, err := client.DecodeEnvelope[projectDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse updated project: %w", err)
	}
	updated, err := toProject(dto)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if _, err := s.api.Delete(ctx, projectPath(id)); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
