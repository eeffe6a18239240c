package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/session"
	"github.com/P3chys/scholarshub-api/internal/utils"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResult struct {
	User models.User `json:"user"`
	TokenPair
}

// Claims bind a JWT to a server-side session. Deleting the session revokes
// every token issued for it.
type Claims struct {
	SessionID string          `json:"sid"`
	UserID    string          `json:"user_id"`
	Role      models.UserRole `json:"role"`
	TokenType string          `json:"typ"`
	jwt.RegisteredClaims
}

type SessionService struct {
	accounts   *AccountService
	store      session.Store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *zap.Logger
}

func NewSessionService(accounts *AccountService, store session.Store, cfg *config.Config, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	accessTTL, err := time.ParseDuration(cfg.JWTAccessExpiry)
	if err != nil {
		accessTTL = 15 * time.Minute
	}
	return &SessionService{
		accounts:   accounts,
		store:      store,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  accessTTL,
		refreshTTL: cfg.SessionTTL(),
		logger:     logger,
	}
}

// Login verifies credentials, persists the identity and issues tokens.
func (s *SessionService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	account, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	user := account.User()

	sid, err := utils.GenerateSecureToken(32)
	if err != nil {
		return LoginResult{}, internal(err, "failed to create session")
	}
	blob, err := session.Encode(user)
	if err != nil {
		return LoginResult{}, internal(err, "failed to create session")
	}
	if err := s.store.Save(ctx, sid, blob, s.refreshTTL); err != nil {
		return LoginResult{}, internal(err, "failed to create session")
	}

	access, err := s.sign(sid, user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}
	refresh, err := s.sign(sid, user, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return LoginResult{User: user, TokenPair: TokenPair{AccessToken: access, RefreshToken: refresh}}, nil
}

// Resolve turns an access token into the caller's session context.
func (s *SessionService) Resolve(ctx context.Context, accessToken string) (*session.Context, *Claims, error) {
	claims, err := s.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.load(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	return session.For(user), claims, nil
}

// Refresh issues a new access token while the session is still alive.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.load(ctx, claims)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.sign(claims.SessionID, user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return internal(err, "failed to end session")
	}
	return nil
}

func (s *SessionService) sign(sid string, user models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sid,
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", internal(err, "failed to generate token")
	}
	return signed, nil
}

func (s *SessionService) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperrors.Clone(apperrors.ErrUnauthorized, "invalid or expired token")
	}
	if claims.TokenType != tokenType || claims.SessionID == "" {
		return nil, apperrors.Clone(apperrors.ErrUnauthorized, "invalid token type")
	}
	return claims, nil
}

func (s *SessionService) load(ctx context.Context, claims *Claims) (models.User, error) {
	blob, err := s.store.Load(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return models.User{}, apperrors.Clone(apperrors.ErrUnauthorized, "session expired")
		}
		return models.User{}, internal(err, "failed to load session")
	}

	user, err := session.Decode(blob)
	if err != nil || user.ID != claims.UserID {
		return models.User{}, apperrors.Clone(apperrors.ErrUnauthorized, "invalid session")
	}
	return user, nil
}

func internal(err error, message string) error {
	return apperrors.Wrap(apperrors.ErrInternal, err, message)
}
