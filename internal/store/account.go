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

const accountTableName = "creditlens.credit_accounts"

var accountColumns = utils.StructTagValues(types.CreditAccount{})

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Account(ctx context.Context, userID, accountID string) (*types.CreditAccount, error) {

	query, args, err := psql().Select(accountColumns...).From(accountTableName).
		Where(sq.Eq{"id": accountID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account query: %w", err)
	}

	var account = new(types.CreditAccount)
	err = pgxscan.Get(ctx, r.pool, account, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) AccountsByReport(ctx context.Context, userID, reportID string) ([]*types.CreditAccount, error) {

	query, args, err := psql().Select(accountColumns...).From(accountTableName).
		Where(sq.Eq{"report_id": reportID, "user_id": userID}).
		OrderBy("creditor_name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate accounts query: %w", err)
	}

	var accounts = make([]*types.CreditAccount, 0)
	err = pgxscan.Select(ctx, r.pool, &accounts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) CreateAccount(ctx context.Context, account *types.CreditAccount) error {

	if account.ID == "" {
		account.ID = utils.NanoID()
	}
	account.CreatedAt = time.Now()

	query, args, err := psql().Insert(accountTableName).SetMap(utils.StructToMap(account)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert account query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create account")
}

// DeleteAccountsByReport clears a report's tradelines ahead of
// re-analysis.
func (r *AccountRepository) DeleteAccountsByReport(ctx context.Context, userID, reportID string) error {

	query, args, err := psql().Delete(accountTableName).
		Where(sq.Eq{"report_id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete accounts query for report %s: %w", reportID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete accounts")
}
