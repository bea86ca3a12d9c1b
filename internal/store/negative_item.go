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

const negativeItemTableName = "creditlens.negative_items"

var negativeItemColumns = utils.StructTagValues(types.NegativeItem{})

type NegativeItemRepository struct {
	pool *pgxpool.Pool
}

func NewNegativeItemRepository(pool *pgxpool.Pool) *NegativeItemRepository {
	return &NegativeItemRepository{pool: pool}
}

func (r *NegativeItemRepository) NegativeItem(ctx context.Context, userID, itemID string) (*types.NegativeItem, error) {

	query, args, err := psql().Select(negativeItemColumns...).From(negativeItemTableName).
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate negative item query: %w", err)
	}

	var item = new(types.NegativeItem)
	err = pgxscan.Get(ctx, r.pool, item, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNegativeItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch negative item: %w", err)
	}

	return item, nil
}

func (r *NegativeItemRepository) NegativeItemsByReport(ctx context.Context, userID, reportID string) ([]*types.NegativeItem, error) {

	query, args, err := psql().Select(negativeItemColumns...).From(negativeItemTableName).
		Where(sq.Eq{"report_id": reportID, "user_id": userID}).
		OrderBy("created_at asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate negative items query: %w", err)
	}

	var items = make([]*types.NegativeItem, 0)
	err = pgxscan.Select(ctx, r.pool, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch negative items: %w", err)
	}

	return items, nil
}

func (r *NegativeItemRepository) CreateNegativeItem(ctx context.Context, item *types.NegativeItem) error {

	if item.ID == "" {
		item.ID = utils.NanoID()
	}
	item.CreatedAt = time.Now()

	query, args, err := psql().Insert(negativeItemTableName).SetMap(utils.StructToMap(item)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert negative item query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create negative item")
}

func (r *NegativeItemRepository) DeleteNegativeItemsByReport(ctx context.Context, userID, reportID string) error {

	query, args, err := psql().Delete(negativeItemTableName).
		Where(sq.Eq{"report_id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete negative items query for report %s: %w", reportID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete negative items")
}
