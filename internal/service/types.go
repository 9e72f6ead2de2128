package service

import (
	"fmt"
	"time"

	"github.com/taskforge/client-go/internal/models"
)

// Wire DTOs. The remote API speaks French field names; everything is
// mapped to internal/models at this boundary and nowhere else.

type userDTO struct {
	Id           int64  `json:"id"`
	Prenom       string `json:"prenom"`
	Nom          string `json:"nom"`
	Email        string `json:"email"`
	Actif        bool   `json:"actif"`
	DateCreation string `json:"dateCreation"`
}

type projectDTO struct {
	Id              int64  `json:"id"`
	Nom             string `json:"nom"`
	Description     string `json:"description"`
	DateDebut       string `json:"dateDebut"`
	DateFin         string `json:"dateFin"`
	DateCreation    string `json:"dateCreation"`
	Role            string `json:"role"`
	Progression     int    `json:"progression"`
	TotalTaches     int    `json:"totalTaches"`
	TachesTerminees int    `json:"tachesTerminees"`
}

type memberStatsDTO struct {
	Total     int `json:"total"`
	Terminees int `json:"terminees"`
	EnCours   int `json:"enCours"`
	AFaire    int `json:"aFaire"`
}

type memberDTO struct {
	Id           int64           `json:"id"`
	Prenom       string          `json:"prenom"`
	Nom          string          `json:"nom"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Statistiques *memberStatsDTO `json:"statistiques"`
}

type assigneeDTO struct {
	Id     int64  `json:"id"`
	Prenom string `json:"prenom"`
	Nom    string `json:"nom"`
}

type taskDTO struct {
	Id           int64         `json:"id"`
	Titre        string        `json:"titre"`
	Description  string        `json:"description"`
	Statut       string        `json:"statut"`
	DateDebut    string        `json:"dateDebut"`
	DateEcheance string        `json:"dateEcheance"`
	ProjetId     int64         `json:"projetId"`
	Assignes     []assigneeDTO `json:"assignes"`
}

type authorDTO struct {
	Id     int64  `json:"id"`
	Prenom string `json:"prenom"`
	Nom    string `json:"nom"`
}

type messageDTO struct {
	Id        int64        `json:"id"`
	Contenu   string       `json:"contenu"`
	DateEnvoi string       `json:"dateEnvoi"`
	ProjetId  int64        `json:"projetId"`
	AuteurId  int64        `json:"auteurId"`
	Auteur    *authorDTO   `json:"auteur"`
	Reponses  []messageDTO `json:"reponses"`
}

type statsDTO struct {
	TotalTaches     int  `json:"totalTaches"`
	TachesTerminees int  `json:"tachesTerminees"`
	TachesEnCours   int  `json:"tachesEnCours"`
	TachesAFaire    int  `json:"tachesAFaire"`
	TotalMembres    int  `json:"totalMembres"`
	Progression     int  `json:"progression"`
	JoursRestants   int  `json:"joursRestants"`
	EnRetard        bool `json:"enRetard"`
}

type completeProjectDTO struct {
	Projet       projectDTO   `json:"projet"`
	Membres      []memberDTO  `json:"membres"`
	Taches       []taskDTO    `json:"taches"`
	Messages     []messageDTO `json:"messages"`
	Statistiques *statsDTO    `json:"statistiques"`
}

const wireDateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(wireDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(wireDateLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func toUser(dto userDTO) (models.User, error) {
	createdAt, err := parseTimestamp(dto.DateCreation)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Id:        dto.Id,
		Name:      dto.Prenom,
		Surname:   dto.Nom,
		Email:     dto.Email,
		Active:    dto.Actif,
		CreatedAt: createdAt,
	}, nil
}

func toProject(dto projectDTO) (models.Project, error) {
	start, err := parseDate(dto.DateDebut)
	if err != nil {
		return models.Project{}, err
	}
	end, err := parseDate(dto.DateFin)
	if err != nil {
		return models.Project{}, err
	}
	createdAt, err := parseTimestamp(dto.DateCreation)
	if err != nil {
		return models.Project{}, err
	}
	return models.Project{
		Id:             dto.Id,
		Name:           dto.Nom,
		Description:    dto.Description,
		StartDate:      start,
		EndDate:        end,
		CreatedAt:      createdAt,
		Role:           models.Role(dto.Role),
		ProgressPct:    dto.Progression,
		TotalTasks:     dto.TotalTaches,
		CompletedTasks: dto.TachesTerminees,
	}, nil
}

func toProjects(dtos []projectDTO) ([]models.Project, error) {
	projects := make([]models.Project, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toProject(dto)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func toMember(dto memberDTO) models.Member {
	m := models.Member{
		Id:      dto.Id,
		Name:    dto.Prenom,
		Surname: dto.Nom,
		Email:   dto.Email,
		Role:    models.Role(dto.Role),
	}
	if dto.Statistiques != nil {
		m.TaskStats = models.TaskCounts{
			Total:      dto.Statistiques.Total,
			Completed:  dto.Statistiques.Terminees,
			InProgress: dto.Statistiques.EnCours,
			Todo:       dto.Statistiques.AFaire,
		}
	}
	return m
}

func toMembers(dtos []memberDTO) []models.Member {
	members := make([]models.Member, 0, len(dtos))
	for _, dto := range dtos {
		members = append(members, toMember(dto))
	}
	return members
}

func toTask(dto taskDTO) (models.Task, error) {
	status, err := models.ParseTaskStatus(dto.Statut)
	if err != nil {
		return models.Task{}, err
	}
	start, err := parseDate(dto.DateDebut)
	if err != nil {
		return models.Task{}, err
	}
	due, err := parseDate(dto.DateEcheance)
	if err != nil {
		return models.Task{}, err
	}
	assignees := make([]models.TaskAssignee, 0, len(dto.Assignes))
	for _, a := range dto.Assignes {
		assignees = append(assignees, models.TaskAssignee{
			Id:      a.Id,
			Name:    a.Prenom,
			Surname: a.Nom,
		})
	}
	return models.Task{
		Id:          dto.Id,
		Title:       dto.Titre,
		Description: dto.Description,
		Status:      status,
		StartDate:   start,
		DueDate:     due,
		ProjectId:   dto.ProjetId,
		Assignees:   assignees,
	}, nil
}

func toTasks(dtos []taskDTO) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toTask(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func toMessage(dto messageDTO) (models.Message, error) {
	sentAt, err := parseTimestamp(dto.DateEnvoi)
	if err != nil {
		return models.Message{}, err
	}
	m := models.Message{
		Id:        dto.Id,
		Content:   dto.Contenu,
		SentAt:    sentAt,
		ProjectId: dto.ProjetId,
		AuthorId:  dto.AuteurId,
	}
	if dto.Auteur != nil {
		m.Author = models.MessageAuthor{
			Id:      dto.Auteur.Id,
			Name:    dto.Auteur.Prenom,
			Surname: dto.Auteur.Nom,
		}
	}
	if len(dto.Reponses) > 0 {
		replies, err := toMessages(dto.Reponses)
		if err != nil {
			return models.Message{}, err
		}
		m.Replies = replies
	}
	return m, nil
}

func toMessages(dtos []messageDTO) ([]models.Message, error) {
	messages := make([]models.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func toStats(dto statsDTO) models.ProjectStats {
	return models.ProjectStats{
		TotalTasks:      dto.TotalTaches,
		CompletedTasks:  dto.TachesTerminees,
		InProgressTasks: dto.TachesEnCours,
		TodoTasks:       dto.TachesAFaire,
		TotalMembers:    dto.TotalMembres,
		ProgressPct:     dto.Progression,
		DaysRemaining:   dto.JoursRestants,
		Overdue:         dto.EnRetard,
	}
}
