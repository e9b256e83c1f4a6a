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

type ClubService struct {
	clubs   repository.ClubRepository
	players repository.PlayerRepository
}

func NewClubService() *ClubService {
	return &ClubService{}
}

func (s *ClubService) ListClubs(ctx context.Context) ([]*model.Club, *Error) {
	l := logger.FromContext(ctx)
	l.Debug("listing clubs")

	repoClubs, err := s.clubs.List(ctx)
	if err != nil {
		l.Error("failed to list clubs", zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to list clubs").WithCause(err)
	}

	clubs := make([]*model.Club, 0, len(repoClubs))
	for _, c := range repoClubs {
		clubs = append(clubs, clubFromRepo(c))
	}
	return clubs, nil
}

// GetClub returns the club and, when withPlayers is set, every player of it.
func (s *ClubService) GetClub(ctx context.Context, id int64, withPlayers bool) (*model.ClubWithPlayers, *Error) {
	l := logger.FromContext(ctx)
	l.Debug("getting club", zap.Int64("club_id", id), zap.Bool("with_players", withPlayers))

	c, err := s.clubs.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("club not found", zap.Int64("club_id", id))
		return nil, NewError(ErrorCodeNotFound, "club not found")
	}
	if err != nil {
		l.Error("failed to get club", zap.Int64("club_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to get club").WithCause(err)
	}

	res := &model.ClubWithPlayers{Club: clubFromRepo(c)}
	if !withPlayers {
		return res, nil
	}

	players, err := s.players.Query(ctx, query.Resolve(id, query.Filters{}))
	if err != nil {
		l.Error("failed to get club players", zap.Int64("club_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to get club players").WithCause(err)
	}
	res.Players = playersFromRepo(players)

	return res, nil
}

// CreateClub stores the club, replacing any club with the same id.
func (s *ClubService) CreateClub(ctx context.Context, in *model.ClubCreate) (*model.Club, *Error) {
	l := logger.FromContext(ctx)
	l.Info("creating club", zap.Int64("club_id", in.ID), zap.String("name", in.Name))

	c := &repository.Club{
		ID:          in.ID,
		Name:        in.Name,
		City:        in.City,
		YearFounded: in.YearFounded,
	}
	if err := s.clubs.Put(ctx, c); err != nil {
		l.Error("failed to create club", zap.Int64("club_id", in.ID), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to create club").WithCause(err)
	}

	return clubFromRepo(c), nil
}

func (s *ClubService) UpdateClub(ctx context.Context, id int64, in *model.ClubUpdate) (*model.Club, *Error) {
	l := logger.FromContext(ctx)
	l.Info("updating club", zap.Int64("club_id", id))

	patch := &repository.ClubPatch{
		ID:          id,
		Name:        in.Name,
		City:        in.City,
		YearFounded: in.YearFounded,
	}
	if patch.Empty() {
		return nil, NewError(ErrorCodeInvalidBody, "at least one of name, city, year_founded must be set")
	}

	c, err := s.clubs.Update(ctx, patch)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("club not found", zap.Int64("club_id", id))
		return nil, NewError(ErrorCodeNotFound, "club not found")
	}
	if err != nil {
		l.Error("failed to update club", zap.Int64("club_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to update club").WithCause(err)
	}

	l.Debug("club updated", zap.Int64("club_id", id), zap.Int64("version", c.Version))
	return clubFromRepo(c), nil
}

func (s *ClubService) DeleteClub(ctx context.Context, id int64) *Error {
	l := logger.FromContext(ctx)
	l.Info("deleting club", zap.Int64("club_id", id))

	err := s.clubs.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("club not found", zap.Int64("club_id", id))
		return NewError(ErrorCodeNotFound, "club not found")
	}
	if err != nil {
		l.Error("failed to delete club", zap.Int64("club_id", id), zap.Error(err))
		return NewError(ErrorCodeDependencyFailure, "failed to delete club").WithCause(err)
	}
	return nil
}

func (s *ClubService) WithClubRepo(r repository.ClubRepository) *ClubService {
	s.clubs = r
	return s
}

func (s *ClubService) WithPlayerRepo(r repository.PlayerRepository) *ClubService {
	s.players = r
	return s
}
