// Package state holds the in-memory containers that keep the client
// coherent with the remote API: one container per entity collection,
// an aggregation container for projects, the identity container, and
// the small cross-cutting helpers (notifications, delete tracking,
// app lock). Containers are constructed once at application start and
// passed down by reference; there is no ambient global state.
package state

import (
	"context"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
	"github.com/taskforge/client-go/internal/service"
)

// Narrow views of the resource services, so containers can be fed
// fakes in tests the same way MigrationService-style consumers are.

type TaskService interface {
	ListByProject(ctx context.Context, projectId int64) ([]models.Task, error)
	Create(ctx context.Context, projectId int64, t models.Task) (*models.Task, error)
	Update(ctx context.Context, id int64, t models.Task) (*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, taskId, userId int64) error
	Unassign(ctx context.Context, taskId, userId int64) error
}

type MemberService interface {
	ListByProject(ctx context.Context, projectId int64) ([]models.Member, error)
	Add(ctx context.Context, projectId int64, email string, role models.Role) (*models.Member, error)
	UpdateRole(ctx context.Context, projectId, memberId int64, role models.Role) (*models.Member, error)
	Remove(ctx context.Context, projectId, memberId int64) error
}

type MessageService interface {
	ListByProject(ctx context.Context, projectId int64) ([]models.Message, error)
	Create(ctx context.Context, projectId int64, content string) (*models.Message, error)
	Update(ctx context.Context, id int64, content string) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
	Replies(ctx context.Context, id int64) ([]models.Message, error)
}

type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	GetComplete(ctx context.Context, id int64) (*models.CompleteProject, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	Update(ctx context.Context, id int64, p models.Project) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Logout(ctx context.Context) error
}

// serverMessage prefers the message the server sent over the generic
// per-operation fallback.
func serverMessage(err error, fallback string) string {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
