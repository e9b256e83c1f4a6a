package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/internal/query"
	"github.com/yakoovad/club-api/internal/repository"
	"github.com/yakoovad/club-api/pkg/logger"
)

type PlayerService struct {
	clubs   repository.ClubRepository
	players repository.PlayerRepository
}

func NewPlayerService() *PlayerService {
	return &PlayerService{}
}

// ListPlayers resolves the filters into a single lookup plan for the club.
// A club without players, or an unknown club, yields an empty list.
func (s *PlayerService) ListPlayers(ctx context.Context, clubID int64, filters query.Filters) ([]*model.Player, *Error) {
	l := logger.FromContext(ctx)

	plan := query.Resolve(clubID, filters)
	l.Debug("listing players",
		zap.Int64("club_id", clubID),
		zap.String("strategy", string(plan.Strategy)),
		zap.String("prefix", plan.Prefix))

	players, err := s.players.Query(ctx, plan)
	if err != nil {
		l.Error("failed to query players", zap.Int64("club_id", clubID), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to query players").WithCause(err)
	}
	return playersFromRepo(players), nil
}

// CreatePlayer stores a player of an existing club. The denormalised club
// name defaults to the owning club's name.
func (s *PlayerService) CreatePlayer(ctx context.Context, clubID int64, in *model.PlayerCreate) (*model.Player, *Error) {
	l := logger.FromContext(ctx)
	l.Info("creating player", zap.Int64("club_id", clubID), zap.String("player_name", in.PlayerName))

	club, err := s.clubs.Get(ctx, clubID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("club not found", zap.Int64("club_id", clubID))
		return nil, NewError(ErrorCodeNotFound, "club not found")
	}
	if err != nil {
		l.Error("failed to get club", zap.Int64("club_id", clubID), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to get club").WithCause(err)
	}

	p := &repository.Player{
		ClubID:      clubID,
		PlayerName:  in.PlayerName,
		Position:    in.Position,
		Nationality: in.Nationality,
		Value:       in.Value,
		Age:         in.Age,
		Appearances: in.Appearances,
		Club:        in.Club,
		League:      in.League,
	}
	if p.Club == "" {
		p.Club = club.Name
	}

	if err = s.players.Put(ctx, p); err != nil {
		l.Error("failed to create player", zap.Int64("club_id", clubID), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to create player").WithCause(err)
	}

	return playerFromRepo(p), nil
}

func (s *PlayerService) WithClubRepo(r repository.ClubRepository) *PlayerService {
	s.clubs = r
	return s
}

func (s *PlayerService) WithPlayerRepo(r repository.PlayerRepository) *PlayerService {
	s.players = r
	return s
}
