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

const reportTableName = "creditlens.credit_reports"

var reportColumns = utils.StructTagValues(types.CreditReport{})

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) Report(ctx context.Context, userID, reportID string) (*types.CreditReport, error) {

	query, args, err := psql().Select(reportColumns...).From(reportTableName).
		Where(sq.Eq{"id": reportID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report query: %w", err)
	}

	var report = new(types.CreditReport)
	err = pgxscan.Get(ctx, r.pool, report, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	return report, nil
}

func (r *ReportRepository) ReportsByUser(ctx context.Context, userID string) ([]*types.CreditReport, error) {

	query, args, err := psql().Select(reportColumns...).From(reportTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reports query: %w", err)
	}

	var reports = make([]*types.CreditReport, 0)
	err = pgxscan.Select(ctx, r.pool, &reports, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) CreateReport(ctx context.Context, report *types.CreditReport) error {

	now := time.Now()
	if report.ID == "" {
		report.ID = utils.NanoID()
	}
	report.CreatedAt = now
	report.UpdatedAt = now

	query, args, err := psql().Insert(reportTableName).SetMap(utils.StructToMap(report)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert report query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create report")
}

func (r *ReportRepository) UpdateReport(ctx context.Context, report *types.CreditReport) error {

	report.UpdatedAt = time.Now()

	query, args, err := psql().Update(reportTableName).
		SetMap(utils.StructToMap(report)).
		Where(sq.Eq{"id": report.ID, "user_id": report.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update report query for report %s: %w", report.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update report")
}

// UpdateStatus advances the processing lifecycle without touching the
// payload columns.
func (r *ReportRepository) UpdateStatus(ctx context.Context, userID, reportID string, status types.ReportStatus, failureReason string) error {

	query, args, err := psql().Update(reportTableName).
		Set("status", status).
		Set("failure_reason", nullable(failureReason)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate status update query for report %s: %w", reportID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update report status")
}

func (r *ReportRepository) DeleteReport(ctx context.Context, userID, reportID string) error {

	query, args, err := psql().Delete(reportTableName).
		Where(sq.Eq{"id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete report query for report %s: %w", reportID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete report")
}
