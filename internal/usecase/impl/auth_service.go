package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	identityRepo      repository.IdentityRepository
	statsRepo         repository.StatsRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	validator         service.Validator
	minPasswordLength int
	allowAdminSignup  bool
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	IdentityRepo repository.IdentityRepository
	StatsRepo    repository.StatsRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Validator    service.Validator
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	srv := &authService{
		txManager:         params.TxManager,
		identityRepo:      params.IdentityRepo,
		statsRepo:         params.StatsRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		validator:         params.Validator,
		minPasswordLength: 6,
		logger:            params.Logger,
	}
	if params.Config != nil && params.Config.Auth != nil {
		if params.Config.Auth.MinPasswordLength > 0 {
			srv.minPasswordLength = params.Config.Auth.MinPasswordLength
		}
		srv.allowAdminSignup = params.Config.Auth.AllowAdminSignup
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Register opens a vendor account, or an admin account when admin signup is enabled.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	var policyErrs []error
	switch {
	case input.Password == "":
	case len(input.Password) < srv.minPasswordLength:
		policyErrs = append(policyErrs, domainerrors.NewFieldError("password", fmt.Sprintf("must be at least %d characters", srv.minPasswordLength)))
	case len(input.Password) > service.MaxPasswordBytes:
		policyErrs = append(policyErrs, domainerrors.NewFieldError("password", fmt.Sprintf("must be at most %d bytes", service.MaxPasswordBytes)))
	}

	role := input.Role
	if role == "" {
		role = entity.RoleVendor
	}
	if role == entity.RoleAdmin && !srv.allowAdminSignup {
		policyErrs = append(policyErrs, domainerrors.NewFieldError("role", "admin accounts cannot be self-registered"))
	}

	if err := domainerrors.JoinValidation(append([]error{srv.validator.Struct(input)}, policyErrs...)...); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(input.Phone)
	srv.log(ctx).Info("Starting registration", slog.Any("role", role), slog.String("phone", phone))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	identity := &entity.Identity{
		Name:         strings.TrimSpace(input.Name),
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		Location:     strings.TrimSpace(input.Location),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.NewIdentityRepository()

		_, findErr := identityRepo.FindByPhone(ctx, phone)
		if findErr == nil {
			return repository.ErrPhoneTaken
		}
		if !errors.Is(findErr, repository.ErrIdentityNotFound) {
			return errors.Wrap(findErr, "failed to check phone")
		}

		return identityRepo.Create(ctx, identity)
	})
	if err != nil {
		if errors.Is(err, repository.ErrPhoneTaken) {
			srv.log(ctx).Warn("Registration rejected: phone already registered", slog.String("phone", phone))

			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("identityID", identity.ID))

	return srv.issue(identity)
}

// Login verifies the phone and password. Unknown phones and wrong passwords
// are reported the same way.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(input.Phone)
	identity, err := srv.identityRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("phone", phone), slog.Any("error", err))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load identity")
	}

	// bcrypt is CPU-bound; keep it outside any transaction.
	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("phone", phone), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Debug("Identity logged in", slog.Any("identityID", identity.ID))

	return srv.issue(identity)
}

func (srv *authService) issue(identity *entity.Identity) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.IssueToken(identity)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.AuthOutput{Token: token, Identity: identity}, nil
}

func (srv *authService) ListVendors(ctx context.Context, caller entity.Caller) ([]*entity.Identity, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	vendors, err := srv.identityRepo.ListByRole(ctx, entity.RoleVendor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	return vendors, nil
}

// VendorStats attaches sales and delivery aggregates to every vendor.
// Vendors without records report zeros.
func (srv *authService) VendorStats(ctx context.Context, caller entity.Caller) ([]*entity.VendorStats, error) {
	vendors, err := srv.ListVendors(ctx, caller)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}

	totals, err := srv.statsRepo.TransactionTotalsByOwner(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate transactions")
	}
	deliveries, err := srv.statsRepo.DeliveryCountsByOwner(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate deliveries")
	}

	stats := make([]*entity.VendorStats, 0, len(vendors))
	for _, v := range vendors {
		t := totals[v.ID]
		stats = append(stats, &entity.VendorStats{
			Identity:        *v,
			TotalSales:      t.Count,
			TotalRevenue:    t.TotalAmount,
			TotalDeliveries: deliveries[v.ID],
		})
	}

	return stats, nil
}

func (srv *authService) UpdateVendor(ctx context.Context, caller entity.Caller, vendorID uuid.UUID, input *usecase.UpdateVendorInput) (*entity.Identity, error) {
	if !caller.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	vendor, err := srv.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	setString(&vendor.Name, input.Name)
	setString(&vendor.Phone, input.Phone)
	setString(&vendor.Location, input.Location)

	if err := srv.identityRepo.Update(ctx, vendor); err != nil {
		switch {
		case errors.Is(err, repository.ErrPhoneTaken):
			return nil, domainerrors.ErrUserAlreadyExists
		case errors.Is(err, repository.ErrIdentityNotFound):
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to update vendor")
	}

	srv.log(ctx).Info("Vendor updated", slog.Any("vendorID", vendorID), slog.Any("adminID", caller.IdentityID))

	return srv.findVendor(ctx, vendorID)
}

func (srv *authService) DeleteVendor(ctx context.Context, caller entity.Caller, vendorID uuid.UUID) error {
	if !caller.IsAdmin() {
		return domainerrors.ErrForbidden
	}

	if _, err := srv.findVendor(ctx, vendorID); err != nil {
		return err
	}

	if err := srv.identityRepo.Delete(ctx, vendorID); err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return domainerrors.ErrVendorNotFound
		}

		return errors.Wrap(err, "failed to delete vendor")
	}

	srv.log(ctx).Info("Vendor deleted", slog.Any("vendorID", vendorID), slog.Any("adminID", caller.IdentityID))

	return nil
}

// findVendor loads an identity and rejects anything that is not a vendor.
func (srv *authService) findVendor(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	identity, err := srv.identityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}
	if identity.Role != entity.RoleVendor {
		return nil, domainerrors.ErrVendorNotFound
	}

	return identity, nil
}
