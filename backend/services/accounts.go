package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"learnhub/backend/apperr"
	"learnhub/backend/auth"
	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"
)

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService issues and resolves the HS256 tokens that stand in for the
// hosted identity provider.
type AuthService struct {
	repos *Repos
	cfg   *config.Config
	log   *zap.SugaredLogger
}

func NewAuthService(repos *Repos, cfg *config.Config, log *zap.SugaredLogger) *AuthService {
	return &AuthService{repos: repos, cfg: cfg, log: log.Named("auth")}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, logFailure(s.log, "hash password", err)
	}
	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		Role:         models.RoleUser,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, logFailure(s.log, "register", err)
	}
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, logFailure(s.log, "login", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, err := utils.GenerateJWTToken(user.ID, s.cfg)
	if err != nil {
		return nil, logFailure(s.log, "sign token", err)
	}
	return &Session{Token: token, User: user}, nil
}

// ResolveCaller turns an Authorization header into a caller. The role comes
// from the user row, so a demoted admin loses access on the next request.
func (s *AuthService) ResolveCaller(ctx context.Context, header string) (auth.Caller, error) {
	userID, err := utils.ParseToken(header, s.cfg)
	if err != nil {
		return auth.Anonymous, apperr.Unauthorized("invalid or expired token")
	}
	user, err := s.repos.Users.GetByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return auth.Anonymous, apperr.Unauthorized("invalid or expired token")
	}
	if err != nil {
		return auth.Anonymous, logFailure(s.log, "resolve caller", err)
	}
	return auth.NewCaller(user.ID, user.Role), nil
}
