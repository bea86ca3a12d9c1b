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

const violationTableName = "creditlens.violations"

var violationColumns = utils.StructTagValues(types.Violation{})

type ViolationRepository struct {
	pool *pgxpool.Pool
}

func NewViolationRepository(pool *pgxpool.Pool) *ViolationRepository {
	return &ViolationRepository{pool: pool}
}

func (r *ViolationRepository) Violation(ctx context.Context, userID, violationID string) (*types.Violation, error) {

	query, args, err := psql().Select(violationColumns...).From(violationTableName).
		Where(sq.Eq{"id": violationID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate violation query: %w", err)
	}

	var violation = new(types.Violation)
	err = pgxscan.Get(ctx, r.pool, violation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrViolationNotFound
		}
		return nil, fmt.Errorf("failed to fetch violation: %w", err)
	}

	return violation, nil
}

func (r *ViolationRepository) ViolationsByReport(ctx context.Context, userID, reportID string) ([]*types.Violation, error) {

	query, args, err := psql().Select(violationColumns...).From(violationTableName).
		Where(sq.Eq{"report_id": reportID, "user_id": userID}).
		OrderBy("severity asc", "created_at asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate violations query: %w", err)
	}

	var violations = make([]*types.Violation, 0)
	err = pgxscan.Select(ctx, r.pool, &violations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch violations: %w", err)
	}

	return violations, nil
}

func (r *ViolationRepository) CreateViolation(ctx context.Context, violation *types.Violation) error {

	if violation.ID == "" {
		violation.ID = utils.NanoID()
	}
	violation.CreatedAt = time.Now()

	query, args, err := psql().Insert(violationTableName).SetMap(utils.StructToMap(violation)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert violation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create violation")
}

func (r *ViolationRepository) DeleteViolationsByReport(ctx context.Context, userID, reportID string) error {

	query, args, err := psql().Delete(violationTableName).
		Where(sq.Eq{"report_id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete violations query for report %s: %w", reportID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete violations")
}
