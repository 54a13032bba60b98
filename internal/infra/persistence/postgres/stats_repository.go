package postgres

import (
	"context"
	"time"

	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statsRepository implements the repository.StatsRepository interface.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{
		db: db,
	}
}

type transactionTotalsRow struct {
	OwnerID     uuid.UUID
	SalesCount  int64
	TotalAmount float64
}

type deliveryCountRow struct {
	OwnerID       uuid.UUID
	DeliveryCount int64
}

func (repo *statsRepository) TransactionTotalsByOwner(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]repository.TransactionTotals, error) {
	totals := make(map[uuid.UUID]repository.TransactionTotals, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return totals, nil
	}

	var rows []transactionTotalsRow
	if err := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("owner_id, COUNT(*) AS sales_count, COALESCE(SUM(total_amount), 0) AS total_amount").
		Where("owner_id IN ?", ownerIDs).
		Group("owner_id").
		Scan(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to aggregate transactions")
	}

	for _, row := range rows {
		totals[row.OwnerID] = repository.TransactionTotals{
			Count:       row.SalesCount,
			TotalAmount: row.TotalAmount,
		}
	}

	return totals, nil
}

func (repo *statsRepository) DeliveryCountsByOwner(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return counts, nil
	}

	var rows []deliveryCountRow
	if err := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Select("owner_id, COUNT(*) AS delivery_count").
		Where("owner_id IN ?", ownerIDs).
		Group("owner_id").
		Scan(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to aggregate deliveries")
	}

	for _, row := range rows {
		counts[row.OwnerID] = row.DeliveryCount
	}

	return counts, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()

	return &u
}
