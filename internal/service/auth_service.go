package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"greenboard/internal/auth"
	apperrors "greenboard/internal/errors"
	"greenboard/internal/mail"
	"greenboard/internal/model"
	"greenboard/internal/repository"
)

const bcryptCost = 10

// AuthService handles the account lifecycle: registration, token
// issuance, password change/forgot/reset and self-deletion.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, userID uint, token, newPassword string) error
	DeleteAccount(ctx context.Context, userID uint) (username string, err error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.ResetTokenRepository
	jwt       *auth.JWTService
	store     auth.TokenStoreInterface
	mailer    mail.Mailer
	frontend  string
	now       func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.ResetTokenRepository,
	jwt *auth.JWTService,
	store auth.TokenStoreInterface,
	mailer mail.Mailer,
	frontendURL string,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwt:       jwt,
		store:     store,
		mailer:    mailer,
		frontend:  frontendURL,
		now:       time.Now,
	}
}

// Register creates a new user with a hashed password. The stats row is
// provisioned in the same transaction as the user row.
func (s *authService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := s.userRepo.CreateWithStats(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwt.GenerateAccessToken(user.ID, user.Username, user.IsStaff)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwt.GenerateRefreshToken(user.ID, user.Username, user.IsStaff)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.store.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, user.IsStaff, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	storedID, storedUsername, storedStaff, err := s.store.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if storedID != claims.UserID || storedUsername != claims.Username {
		return "", apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateAccessToken(claims.UserID, claims.Username, storedStaff)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return s.store.DeleteRefreshToken(ctx, tokenID)
}

// ChangePassword verifies the old password and replaces the hash. The
// stored hash is untouched when the old password does not match.
func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.ErrWrongOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	return s.userRepo.Update(ctx, user)
}

// ForgotPassword creates a reset token for the named account and emails
// the reset link. A miss on the username is silently absorbed so the
// endpoint cannot be used to enumerate accounts; mail failures are
// logged but never surfaced for the same reason.
func (s *authService) ForgotPassword(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token := &model.PasswordResetToken{UserID: user.ID}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	link := mail.ResetLink(s.frontend, user.ID, token.Token)
	body := fmt.Sprintf("Click the link to reset your password: %s", link)
	if err := s.mailer.Send(user.Email, "Password Reset", body); err != nil {
		log.Printf("reset mail for user %d not delivered: %v", user.ID, err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password. The
// token is deleted on success so it cannot be replayed.
func (s *authService) ResetPassword(ctx context.Context, userID uint, token, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("find user: %w", err)
	}

	rec, err := s.tokenRepo.FindByUserAndToken(ctx, user.ID, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	if !rec.IsValid(s.now()) {
		return apperrors.ErrResetTokenExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return s.tokenRepo.Delete(ctx, rec.ID)
}

// DeleteAccount removes the caller's account, cascading to stats and
// reset tokens.
func (s *authService) DeleteAccount(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	return user.Username, nil
}
