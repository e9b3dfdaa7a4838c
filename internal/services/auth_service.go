package services

import (
	"context"
	"errors"

	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"farm_market/internal/auth"
	"farm_market/internal/logger"
	"farm_market/internal/metrics"
	"farm_market/internal/models"
	"farm_market/internal/repository"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	cost   int
	log    *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost, log: log}
}

// Register creates an account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (_ *models.User, _ string, err error) {
	defer func() { metrics.RecordMutation("user", "register", outcome(err)) }()

	in.normalize()
	if err := check(in); err != nil {
		return nil, "", err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", newError(KindDuplicateKey, "user already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", internal("could not look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", internal("could not hash password", err)
	}

	user := &models.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Location:      in.Location,
		ContactNumber: in.ContactNumber,
		Role:          in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", newError(KindDuplicateKey, "user already exists", err)
		}
		return nil, "", internal("could not create user", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", internal("could not generate token", err)
	}

	logger.FromCtx(ctx, s.log).WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user registered")
	return user, token, nil
}

// Login checks the credentials and returns a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	invalid := newError(KindUnauthenticated, "invalid credentials", nil)
	creds := credentials{Email: normalizeEmail(email), Password: password}
	if err := check(creds); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", invalid
		}
		return nil, "", internal("could not look up user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.FromCtx(ctx, s.log).WithField("user_id", user.ID).Warn("failed login")
		return nil, "", invalid
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", internal("could not generate token", err)
	}
	return user, token, nil
}

// Profile returns the actor's own account.
func (s *AuthService) Profile(ctx context.Context, actor *auth.Actor) (*models.User, error) {
	if err := CheckRole(actor, ActionViewProfile); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user")
		}
		return nil, internal("could not load user", err)
	}
	return user, nil
}
