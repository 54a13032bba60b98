package postgres

import (
	"context"

	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// identityRepository implements the repository.IdentityRepository interface.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{
		db: db,
	}
}

// Create persists a new identity.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Create(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrPhoneTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	identity.CreatedAt = identityM.CreatedAt
	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

// FindByID retrieves an identity by its unique ID.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByPhone retrieves an identity by its phone number.
func (repo *identityRepository) FindByPhone(ctx context.Context, phone string) (*entity.Identity, error) {
	return repo.findOne(ctx, "phone = ?", phone)
}

func (repo *identityRepository) findOne(ctx context.Context, query string, arg any) (*entity.Identity, error) {
	var identityM model.IdentityModel

	if err := repo.db.WithContext(ctx).
		Where(query, arg).
		First(&identityM).Error; err != nil {
		if isNotFound(err) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find identity")
	}

	return toIdentityDomain(&identityM), nil
}

// ListByRole returns every identity holding the role, oldest first.
func (repo *identityRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error) {
	var identityModels []*model.IdentityModel

	if err := repo.db.WithContext(ctx).
		Where("role = ?", role.String()).
		Order("created_at ASC").
		Find(&identityModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list identities")
	}

	return mapModels(identityModels, toIdentityDomain), nil
}

// Update writes the profile fields of an identity.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	result := repo.db.WithContext(ctx).
		Model(&model.IdentityModel{}).
		Where("id = ?", identity.ID).
		Updates(map[string]any{
			"name":     identity.Name,
			"phone":    identity.Phone,
			"location": identity.Location,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrPhoneTaken
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update identity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// Delete removes an identity. Records it owns are left in place.
func (repo *identityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.IdentityModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete identity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toIdentityDomain converts a GORM IdentityModel to a domain Identity entity.
func toIdentityDomain(data *model.IdentityModel) *entity.Identity {
	if data == nil {
		return nil
	}

	return &entity.Identity{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		Location:     data.Location,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromIdentityDomain converts a domain Identity entity to a GORM IdentityModel.
func fromIdentityDomain(data *entity.Identity) *model.IdentityModel {
	if data == nil {
		return nil
	}

	return &model.IdentityModel{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		Location:     data.Location,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
