package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/utils"
)

type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	DisplayName string  `json:"display_name" validate:"required,max=100"`
	Avatar      *string `json:"avatar" validate:"omitempty,url"`
}

// AccountService verifies credentials. New registrations are always students.
type AccountService struct {
	repo      repository.AccountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

func NewAccountService(repo repository.AccountRepository, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, validator: validate, logger: logger}
}

func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (models.Account, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := s.validator.Struct(req); err != nil {
		return models.Account{}, apperrors.Wrap(apperrors.ErrValidation, err, "invalid registration payload")
	}

	return s.create(ctx, req.Email, req.Password, req.DisplayName, models.RoleStudent, req.Avatar)
}

// Authenticate returns the account for a matching email and password. Unknown
// emails and wrong passwords produce the same error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	account, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return models.Account{}, apperrors.Clone(apperrors.ErrInvalidCredential, "")
		}
		return models.Account{}, err
	}

	if !utils.VerifyPassword(account.PasswordHash, password) {
		return models.Account{}, apperrors.Clone(apperrors.ErrInvalidCredential, "")
	}
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (models.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// SeedAdmin creates the admin account if no admin exists yet.
func (s *AccountService) SeedAdmin(ctx context.Context, email, password, name string) (bool, error) {
	count, err := s.repo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.logger.Debug("admin account already exists, skipping seed")
		return false, nil
	}

	if _, err := s.create(ctx, strings.ToLower(email), password, name, models.RoleAdmin, nil); err != nil {
		return false, err
	}
	s.logger.Info("created default admin account", zap.String("email", email))
	return true, nil
}

func (s *AccountService) create(ctx context.Context, email, password, name string, role models.UserRole, avatar *string) (models.Account, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.Account{}, apperrors.Wrap(apperrors.ErrInternal, err, "failed to hash password")
	}

	account := models.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  name,
		Avatar:       avatar,
	}
	if err := s.repo.Create(ctx, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}
