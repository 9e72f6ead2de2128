package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

type MemberService struct {
	api *client.Client
}

func NewMemberService(api *client.Client) *MemberService {
	return &MemberService{api: api}
}

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type memberRoleRequest struct {
	Role string `json:"role"`
}

func memberPath(projectId, memberId int64) string {
	return projectPath(projectId) + "/membres/" + strconv.FormatInt(memberId, 10)
}

func (s *MemberService) ListByProject(ctx context.Context, projectId int64) ([]models.Member, error) {
	body, err := s.api.Get(ctx, projectPath(projectId)+"/membres")
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	dtos, err := client.DecodeEnvelope[[]memberDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse members: %w", err)
	}
	return toMembers(dtos), nil
}

func (s *MemberService) Add(ctx context.Context, projectId int64, email string, role models.Role) (*models.Member, error) {
	req := addMemberRequest{Email: email, Role: string(role)}
	body, err := s.api.Post(ctx, projectPath(projectId)+"/membres", req)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	dto, err := client.DecodeEnvelope[memberDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse added member: %w", err)
	}
	member := toMember(dto)
	return &member, nil
}

func (s *MemberService) UpdateRole(ctx context.Context, projectId, memberId int64, role models.Role) (*models.Member, error) {
	body, err := s.api.Put(ctx, memberPath(projectId, memberId), memberRoleRequest{Role: string(role)})
	if err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}
	dto, err := client.DecodeEnvelope[memberDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse updated member: %w", err)
	}
	member := toMember(dto)
	return &member, nil
}

func (s *MemberService) Remove(ctx context.Context, projectId, memberId int64) error {
	if _, err := s.api.Delete(ctx, memberPath(projectId, memberId)); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}
