package store

import (
	"context"
	"fmt"
	"time"

	"creditlens/internal/utils"
	"creditlens/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const letterTableName = "creditlens.dispute_letters"

var letterColumns = utils.StructTagValues(types.DisputeLetter{})

type LetterRepository struct {
	pool *pgxpool.Pool
}

func NewLetterRepository(pool *pgxpool.Pool) *LetterRepository {
	return &LetterRepository{pool: pool}
}

func (r *LetterRepository) Letter(ctx context.Context, userID, letterID string) (*types.DisputeLetter, error) {

	query, args, err := psql().Select(letterColumns...).From(letterTableName).
		Where(sq.Eq{"id": letterID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate letter query: %w", err)
	}

	var letter = new(types.DisputeLetter)
	err = pgxscan.Get(ctx, r.pool, letter, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to fetch letter: %w", err)
	}

	return letter, nil
}

func (r *LetterRepository) LettersByUser(ctx context.Context, userID string) ([]*types.DisputeLetter, error) {

	query, args, err := psql().Select(letterColumns...).From(letterTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate letters query: %w", err)
	}

	var letters = make([]*types.DisputeLetter, 0)
	err = pgxscan.Select(ctx, r.pool, &letters, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch letters: %w", err)
	}

	return letters, nil
}

func (r *LetterRepository) CreateLetter(ctx context.Context, letter *types.DisputeLetter) error {

	now := time.Now()
	if letter.ID == "" {
		letter.ID = utils.NanoID()
	}
	letter.CreatedAt = now
	letter.UpdatedAt = now

	query, args, err := psql().Insert(letterTableName).SetMap(utils.StructToMap(letter)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert letter query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create letter")
}

// UpdateStatus is the only mutation allowed on a generated letter.
func (r *LetterRepository) UpdateStatus(ctx context.Context, userID, letterID string, status types.LetterStatus) error {

	query, args, err := psql().Update(letterTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": letterID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate letter status query for letter %s: %w", letterID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update letter status")
}
