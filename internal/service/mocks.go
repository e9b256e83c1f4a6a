package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yakoovad/club-api/internal/query"
	"github.com/yakoovad/club-api/internal/repository"
)

type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) Get(ctx context.Context, id int64) (*repository.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Club), args.Error(1)
}

func (m *MockClubRepository) List(ctx context.Context) ([]*repository.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Club), args.Error(1)
}

func (m *MockClubRepository) Put(ctx context.Context, club *repository.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) Update(ctx context.Context, patch *repository.ClubPatch) (*repository.Club, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Club), args.Error(1)
}

func (m *MockClubRepository) UpdateTranslations(ctx context.Context, id int64, cache map[string]repository.Translation, expectedVersion int64) error {
	args := m.Called(ctx, id, cache, expectedVersion)
	return args.Error(0)
}

func (m *MockClubRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Query(ctx context.Context, plan query.Plan) ([]*repository.Player, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Player), args.Error(1)
}

func (m *MockPlayerRepository) Put(ctx context.Context, player *repository.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	args := m.Called(ctx, text, source, target)
	return args.String(0), args.Error(1)
}

type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmSignUp(ctx context.Context, username, code string) error {
	args := m.Called(ctx, username, code)
	return args.Error(0)
}
