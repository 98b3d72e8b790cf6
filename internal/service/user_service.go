package service

import (
	"context"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/repository"
)

// UserService handles admin-facing account management.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// List returns accounts, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	return s.users.List(ctx, role)
}

// Deactivate soft-deletes an account. Attendance records referencing the
// user survive; the guard rejects the user's tokens from the next request on.
func (s *UserService) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventUserDeactivated,
		SubjectID: id,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload:   events.UserDeactivatedPayload{UserID: id},
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
