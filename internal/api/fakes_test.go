package api

import (
	"context"
	"time"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/service"
)

type fakeAccounts struct {
	registerFn func(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	loginFn    func(ctx context.Context, username, password string) (*service.AuthResult, error)
}

var _ service.AccountService = (*fakeAccounts)(nil)

func (f *fakeAccounts) Register(ctx context.Context, username, email, password string) (*service.AuthResult, error) {
	return f.registerFn(ctx, username, email, password)
}

func (f *fakeAccounts) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	return f.loginFn(ctx, username, password)
}

func (f *fakeAccounts) Verify(ctx context.Context, token string) (domain.Identity, error) {
	return domain.Identity{}, service.ErrUnauthenticated
}

type fakeTasks struct {
	listFn   func(ctx context.Context, identity domain.Identity) ([]domain.Task, error)
	createFn func(ctx context.Context, identity domain.Identity, fields domain.TaskFields) (int64, error)
	updateFn func(ctx context.Context, identity domain.Identity, id int64, fields domain.TaskFields) error
	deleteFn func(ctx context.Context, identity domain.Identity, id int64) error
}

var _ service.TaskService = (*fakeTasks)(nil)

func (f *fakeTasks) List(ctx context.Context, identity domain.Identity) ([]domain.Task, error) {
	return f.listFn(ctx, identity)
}

func (f *fakeTasks) Create(ctx context.Context, identity domain.Identity, fields domain.TaskFields) (int64, error) {
	return f.createFn(ctx, identity, fields)
}

func (f *fakeTasks) Update(ctx context.Context, identity domain.Identity, id int64, fields domain.TaskFields) error {
	return f.updateFn(ctx, identity, id, fields)
}

func (f *fakeTasks) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	return f.deleteFn(ctx, identity, id)
}

var fixedExpiry = time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

func authResult(id int64, username string) *service.AuthResult {
	return &service.AuthResult{
		Identity:  domain.Identity{UserID: id, Username: username},
		Token:     "signed-token",
		ExpiresAt: fixedExpiry,
	}
}
