package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/internal/query"
	"github.com/yakoovad/club-api/internal/repository"
)

func TestPlayerService_ListPlayers(t *testing.T) {
	tests := []struct {
		name      string
		filters   query.Filters
		plan      query.Plan
		err       error
		errorCode ErrorCode
	}{
		{
			name:    "category wins over name prefix",
			filters: query.Filters{Category: strPtr("Forward"), NamePrefix: strPtr("Mo")},
			plan:    query.Plan{Strategy: query.StrategyCategoryPrefix, OwnerID: 1, Prefix: "Forward"},
		},
		{
			name:    "name prefix",
			filters: query.Filters{NamePrefix: strPtr("Mo")},
			plan:    query.Plan{Strategy: query.StrategyNamePrefix, OwnerID: 1, Prefix: "Mo"},
		},
		{
			name: "full scan",
			plan: query.Plan{Strategy: query.StrategyFullScan, OwnerID: 1},
		},
		{
			name:      "store failure",
			plan:      query.Plan{Strategy: query.StrategyFullScan, OwnerID: 1},
			err:       errors.New("timeout"),
			errorCode: ErrorCodeDependencyFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := new(MockPlayerRepository)
			if tt.err != nil {
				players.On("Query", mock.Anything, tt.plan).Return(nil, tt.err)
			} else {
				players.On("Query", mock.Anything, tt.plan).Return([]*repository.Player{}, nil)
			}

			got, err := NewPlayerService().WithPlayerRepo(players).ListPlayers(context.Background(), 1, tt.filters)
			if tt.errorCode != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				require.Nil(t, err)
				assert.NotNil(t, got)
				assert.Empty(t, got)
			}
			players.AssertExpectations(t)
		})
	}
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	tests := []struct {
		name       string
		in         *model.PlayerCreate
		setupMocks func(*MockClubRepository, *MockPlayerRepository)
		errorCode  ErrorCode
		wantClub   string
	}{
		{
			name: "club name is filled in",
			in:   &model.PlayerCreate{PlayerName: "Mohamed Salah", Position: "Forward"},
			setupMocks: func(cr *MockClubRepository, pr *MockPlayerRepository) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				pr.On("Put", mock.Anything, mock.MatchedBy(func(p *repository.Player) bool {
					return p.ClubID == 1 && p.PlayerName == "Mohamed Salah" && p.Club == "Liverpool"
				})).Return(nil)
			},
			wantClub: "Liverpool",
		},
		{
			name: "explicit club name is kept",
			in:   &model.PlayerCreate{PlayerName: "Mohamed Salah", Position: "Forward", Club: "LFC"},
			setupMocks: func(cr *MockClubRepository, pr *MockPlayerRepository) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				pr.On("Put", mock.Anything, mock.Anything).Return(nil)
			},
			wantClub: "LFC",
		},
		{
			name: "unknown club",
			in:   &model.PlayerCreate{PlayerName: "X", Position: "Forward"},
			setupMocks: func(cr *MockClubRepository, _ *MockPlayerRepository) {
				cr.On("Get", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)
			},
			errorCode: ErrorCodeNotFound,
		},
		{
			name: "store failure",
			in:   &model.PlayerCreate{PlayerName: "X", Position: "Forward"},
			setupMocks: func(cr *MockClubRepository, pr *MockPlayerRepository) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				pr.On("Put", mock.Anything, mock.Anything).Return(errors.New("timeout"))
			},
			errorCode: ErrorCodeDependencyFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clubs := new(MockClubRepository)
			players := new(MockPlayerRepository)
			tt.setupMocks(clubs, players)

			got, err := NewPlayerService().
				WithClubRepo(clubs).
				WithPlayerRepo(players).
				CreatePlayer(context.Background(), 1, tt.in)

			if tt.errorCode != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.wantClub, got.Club)
				assert.Equal(t, int64(1), got.ClubID)
			}
			clubs.AssertExpectations(t)
			players.AssertExpectations(t)
		})
	}
}

func TestAuthService_ConfirmSignUp(t *testing.T) {
	confirmer := new(MockConfirmer)
	confirmer.On("ConfirmSignUp", mock.Anything, "alice", "123").Return(nil).Once()
	confirmer.On("ConfirmSignUp", mock.Anything, "bob", "000").Return(errors.New("down")).Once()

	svc := NewAuthService(confirmer)
	assert.Nil(t, svc.ConfirmSignUp(context.Background(), &model.ConfirmSignUp{Username: "alice", Code: "123"}))

	err := svc.ConfirmSignUp(context.Background(), &model.ConfirmSignUp{Username: "bob", Code: "000"})
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeDependencyFailure, err.Code)
	confirmer.AssertExpectations(t)
}
