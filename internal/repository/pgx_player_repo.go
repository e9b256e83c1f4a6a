package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"

	"github.com/yakoovad/club-api/internal/db"
	"github.com/yakoovad/club-api/internal/query"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern builds a LIKE pattern that matches s literally as a prefix.
func prefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}

type pgxPlayerRepository struct {
	pool *pgxpool.Pool
}

func NewPgxPlayerRepository(pool *pgxpool.Pool) PlayerRepository {
	return &pgxPlayerRepository{pool: pool}
}

func (p *pgxPlayerRepository) Query(ctx context.Context, plan query.Plan) ([]*Player, error) {
	e := db.ExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("club_id", "player_name", "position", "nationality", "value", "age", "appearances", "club", "league"),
		sm.From("club_players"),
	)

	owner := psql.Quote("club_id").EQ(psql.Arg(plan.OwnerID))
	switch plan.Strategy {
	case query.StrategyCategoryPrefix:
		q.Apply(
			sm.Where(owner.And(psql.Quote("position").Like(psql.Arg(prefixPattern(plan.Prefix))))),
			sm.OrderBy("position"),
			sm.OrderBy("player_name"),
		)
	case query.StrategyNamePrefix:
		q.Apply(
			sm.Where(owner.And(psql.Quote("player_name").Like(psql.Arg(prefixPattern(plan.Prefix))))),
			sm.OrderBy("player_name"),
		)
	default:
		q.Apply(
			sm.Where(owner),
			sm.OrderBy("player_name"),
		)
	}

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query players of club %d", plan.OwnerID)
	}
	defer rows.Close()

	players, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Player, error) {
		pl := &Player{}
		err := row.Scan(
			&pl.ClubID,
			&pl.PlayerName,
			&pl.Position,
			&pl.Nationality,
			&pl.Value,
			&pl.Age,
			&pl.Appearances,
			&pl.Club,
			&pl.League,
		)
		return pl, err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "query players of club %d", plan.OwnerID)
	}
	return players, nil
}

func (p *pgxPlayerRepository) Put(ctx context.Context, pl *Player) error {
	e := db.ExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("club_players", "club_id", "player_name", "position", "nationality", "value", "age", "appearances", "club", "league"),
		im.Values(
			psql.Arg(pl.ClubID),
			psql.Arg(pl.PlayerName),
			psql.Arg(pl.Position),
			psql.Arg(pl.Nationality),
			psql.Arg(pl.Value),
			psql.Arg(pl.Age),
			psql.Arg(pl.Appearances),
			psql.Arg(pl.Club),
			psql.Arg(pl.League),
		),
		im.OnConflict(psql.Quote("club_id"), psql.Quote("player_name")).DoUpdate(
			im.SetCol("position").ToArg(pl.Position),
			im.SetCol("nationality").ToArg(pl.Nationality),
			im.SetCol("value").ToArg(pl.Value),
			im.SetCol("age").ToArg(pl.Age),
			im.SetCol("appearances").ToArg(pl.Appearances),
			im.SetCol("club").ToArg(pl.Club),
			im.SetCol("league").ToArg(pl.League),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	return errors.Wrapf(err, "put player %q of club %d", pl.PlayerName, pl.ClubID)
}

// PgxStore groups the Postgres repositories over one pool.
type PgxStore struct {
	pool       *pgxpool.Pool
	transactor db.Transactor
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool, transactor: db.NewPgxTransactor(pool)}
}

func (s *PgxStore) Clubs() ClubRepository {
	return NewPgxClubRepository(s.pool, s.transactor)
}

func (s *PgxStore) Players() PlayerRepository {
	return NewPgxPlayerRepository(s.pool)
}

func (s *PgxStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.pool.Ping(ctx), "ping postgres")
}
