package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

type MessageService struct {
	api *client.Client
}

func NewMessageService(api *client.Client) *MessageService {
	return &MessageService{api: api}
}

type messageRequest struct {
	Contenu string `json:"contenu"`
}

func messagePath(id int64) string {
	return "/api/messages/" + strconv.FormatInt(id, 10)
}

func (s *MessageService) ListByProject(ctx context.Context, projectId int64) ([]models.Message, error) {
	body, err := s.api.Get(ctx, projectPath(projectId)+"/messages")
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	dtos, err := client.DecodeEnvelope[[]messageDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse messages: %w", err)
	}
	return toMessages(dtos)
}

func (s *MessageService) Create(ctx context.Context, projectId int64, content string) (*models.Message, error) {
	body, err := s.api.Post(ctx, projectPath(projectId)+"/messages", messageRequest{Contenu: content})
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	dto, err := client.DecodeEnvelope[messageDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse created message: %w", err)
	}
	created, err := toMessage(dto)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MessageService) Update(ctx context.Context, id int64, content string) (*models.Message, error) {
	body, err := s.api.Put(ctx, messagePath(id), messageRequest{Contenu: content})
	if err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	dto, err := client.DecodeEnvelope[messageDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse updated message: %w", err)
	}
	updated, err := toMessage(dto)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if _, err := s.api.Delete(ctx, messagePath(id)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// Replies fetches the reply thread of one message.
func (s *MessageService) Replies(ctx context.Context, id int64) ([]models.Message, error) {
	body, err := s.api.Get(ctx, messagePath(id)+"/reponses")
	if err != nil {
		return nil, fmt.Errorf("get replies: %w", err)
	}
	dtos, err := client.DecodeEnvelope[[]messageDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse replies: %w", err)
	}
	return toMessages(dtos)
}
