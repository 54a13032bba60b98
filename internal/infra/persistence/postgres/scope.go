package postgres

import (
	"context"

	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// scoped narrows a query to the records the scope allows. A scope without an
// owner and without the unrestricted flag matches nothing.
func scoped(scope repository.Scope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.Unrestricted {
			return db
		}
		if scope.OwnerID == uuid.Nil {
			return db.Where("1 = 0")
		}

		return db.Where("owner_id = ?", scope.OwnerID)
	}
}

// ownedStore is the data-access wrapper shared by every owner-scoped table.
// Each read and write goes through scoped before touching the row.
type ownedStore[M any] struct {
	db       *gorm.DB
	notFound error
	conflict error
	preloads []string
}

func newOwnedStore[M any](db *gorm.DB, notFound error, preloads ...string) ownedStore[M] {
	return ownedStore[M]{db: db, notFound: notFound, preloads: preloads}
}

// withConflict maps unique index violations to err.
func (s ownedStore[M]) withConflict(err error) ownedStore[M] {
	s.conflict = err

	return s
}

func (s ownedStore[M]) writeError(err error, details string) error {
	if s.conflict != nil && isUniqueConstraintViolation(err) {
		return s.conflict
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func (s ownedStore[M]) query(ctx context.Context, scope repository.Scope) *gorm.DB {
	q := s.db.WithContext(ctx).Scopes(scoped(scope))
	for _, p := range s.preloads {
		q = q.Preload(p)
	}

	return q
}

func (s ownedStore[M]) create(ctx context.Context, m *M) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return s.writeError(err, "failed to create record")
	}

	return nil
}

func (s ownedStore[M]) first(ctx context.Context, scope repository.Scope, id uuid.UUID) (*M, error) {
	var m M
	if err := s.query(ctx, scope).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, s.notFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find record")
	}

	return &m, nil
}

func (s ownedStore[M]) find(ctx context.Context, scope repository.Scope, filters ...func(*gorm.DB) *gorm.DB) ([]*M, error) {
	var ms []*M
	if err := s.query(ctx, scope).
		Scopes(filters...).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list records")
	}

	return ms, nil
}

// update writes every column of m except the immutable ones. The row must
// match both the id and the scope.
func (s ownedStore[M]) update(ctx context.Context, scope repository.Scope, id uuid.UUID, m *M) error {
	result := s.db.WithContext(ctx).
		Scopes(scoped(scope)).
		Model(m).
		Where("id = ?", id).
		Select("*").
		Omit("id", "owner_id", "created_at", clause.Associations).
		Updates(m)
	if result.Error != nil {
		return s.writeError(result.Error, "failed to update record")
	}

	if result.RowsAffected == 0 {
		return s.notFound
	}

	return nil
}

func (s ownedStore[M]) delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Scopes(scoped(scope)).
		Where("id = ?", id).
		Delete(new(M))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete record")
	}

	if result.RowsAffected == 0 {
		return s.notFound
	}

	return nil
}

func mapModels[M, E any](ms []*M, fn func(*M) *E) []*E {
	out := make([]*E, 0, len(ms))
	for _, m := range ms {
		out = append(out, fn(m))
	}

	return out
}
