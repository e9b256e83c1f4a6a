package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/yakoovad/club-api/internal/db"
)

var clubColumns = []any{"id", "name", "city", "year_founded", "translation_cache", "version"}

type pgxClubRepository struct {
	pool       *pgxpool.Pool
	transactor db.Transactor
}

func NewPgxClubRepository(pool *pgxpool.Pool, transactor db.Transactor) ClubRepository {
	return &pgxClubRepository{pool: pool, transactor: transactor}
}

func scanClub(row pgx.Row) (*Club, error) {
	club := &Club{}
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.City,
		&club.YearFounded,
		&club.TranslationCache,
		&club.Version,
	)
	return club, err
}

func (p *pgxClubRepository) Get(ctx context.Context, id int64) (*Club, error) {
	e := db.ExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(clubColumns...),
		sm.From("clubs"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	club, err := scanClub(e.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get club %d", id)
	}
	return club, nil
}

func (p *pgxClubRepository) List(ctx context.Context) ([]*Club, error) {
	e := db.ExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(clubColumns...),
		sm.From("clubs"),
		sm.OrderBy("id"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list clubs")
	}
	defer rows.Close()

	clubs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Club, error) {
		return scanClub(row)
	})
	if err != nil {
		return nil, errors.Wrap(err, "list clubs")
	}
	return clubs, nil
}

// Put replaces every column of an existing club, including its translation
// cache and version.
func (p *pgxClubRepository) Put(ctx context.Context, club *Club) error {
	e := db.ExecutorFromContext(ctx, p.pool)

	cache := club.TranslationCache
	if cache == nil {
		cache = map[string]Translation{}
	}

	q := psql.Insert(
		im.Into("clubs", "id", "name", "city", "year_founded", "translation_cache", "version"),
		im.Values(
			psql.Arg(club.ID),
			psql.Arg(club.Name),
			psql.Arg(club.City),
			psql.Arg(club.YearFounded),
			psql.Arg(cache),
			psql.Arg(club.Version),
		),
		im.OnConflict(psql.Quote("id")).DoUpdate(
			im.SetCol("name").ToArg(club.Name),
			im.SetCol("city").ToArg(club.City),
			im.SetCol("year_founded").ToArg(club.YearFounded),
			im.SetCol("translation_cache").ToArg(cache),
			im.SetCol("version").ToArg(club.Version),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	return errors.Wrapf(err, "put club %d", club.ID)
}

func (p *pgxClubRepository) Update(ctx context.Context, patch *ClubPatch) (*Club, error) {
	e := db.ExecutorFromContext(ctx, p.pool)

	sets := make([]bob.Mod[*dialect.UpdateQuery], 0, 4)
	if patch.Name != nil {
		sets = append(sets, um.SetCol("name").ToArg(*patch.Name))
	}
	if patch.City != nil {
		sets = append(sets, um.SetCol("city").ToArg(*patch.City))
	}
	if patch.YearFounded != nil {
		sets = append(sets, um.SetCol("year_founded").ToArg(*patch.YearFounded))
	}
	sets = append(sets, um.SetCol("version").To(psql.Raw("version + 1")))

	q := psql.Update(
		um.Table("clubs"),
		um.Where(psql.Quote("id").EQ(psql.Arg(patch.ID))),
		um.Returning(clubColumns...),
	)

	q.Apply(sets...)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	club, err := scanClub(e.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "update club %d", patch.ID)
	}
	return club, nil
}

func (p *pgxClubRepository) UpdateTranslations(ctx context.Context, id int64, cache map[string]Translation, expectedVersion int64) error {
	e := db.ExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("clubs"),
		um.SetCol("translation_cache").ToArg(cache),
		um.SetCol("version").ToArg(expectedVersion+1),
		um.Where(
			psql.Quote("id").EQ(psql.Arg(id)).
				And(psql.Quote("version").EQ(psql.Arg(expectedVersion))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrapf(err, "update translations of club %d", id)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing matched: either the club is gone or someone else bumped the version.
	if _, err = p.Get(ctx, id); err != nil {
		return err
	}
	return ErrVersionConflict
}

// Delete removes the club together with its players.
func (p *pgxClubRepository) Delete(ctx context.Context, id int64) error {
	return p.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		e := db.ExecutorFromContext(ctx, p.pool)

		q := psql.Delete(
			dm.From("clubs"),
			dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		)

		sql, args, err := q.Build(ctx)
		if err != nil {
			return err
		}

		tag, err := e.Exec(ctx, sql, args...)
		if err != nil {
			return errors.Wrapf(err, "delete club %d", id)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		q = psql.Delete(
			dm.From("club_players"),
			dm.Where(psql.Quote("club_id").EQ(psql.Arg(id))),
		)

		sql, args, err = q.Build(ctx)
		if err != nil {
			return err
		}

		_, err = e.Exec(ctx, sql, args...)
		return errors.Wrapf(err, "delete players of club %d", id)
	})
}
