package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"greenboard/internal/auth"
	apperrors "greenboard/internal/errors"
	"greenboard/internal/model"
)

func newAuthService(userRepo *MockUserRepository, tokenRepo *MockResetTokenRepository, store *MockTokenStore, mailer *MockMailer) AuthService {
	return NewAuthService(
		userRepo,
		tokenRepo,
		auth.NewJWTService("test-secret"),
		store,
		mailer,
		"http://localhost:5173",
	)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "Secr3t!pass",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateWithStats", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "bob",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(&model.User{Username: "bob"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthService(mockRepo, new(MockResetTokenRepository), new(MockTokenStore), new(MockMailer))
			user, err := svc.Register(context.Background(), tt.username, tt.password, tt.email)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				// Stats are provisioned with the user, with game defaults.
				assert.NotNil(t, user.GameStats)
				assert.Equal(t, 0, user.GameStats.CurrentSquare)
				assert.Equal(t, -1, user.GameStats.CurrentTask)
				assert.False(t, user.GameStats.TaskCompleted)
				assert.Equal(t, 0, user.GameStats.Score)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mStore *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           1,
					Username:     "alice",
					PasswordHash: string(hashed),
				}, nil)
				mStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "alice", false, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mStore *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, mStore *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           1,
					Username:     "alice",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockStore)

			svc := newAuthService(mockRepo, new(MockResetTokenRepository), mockStore, new(MockMailer))
			access, refresh, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, access)
				assert.Empty(t, refresh)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, access)
				assert.NotEmpty(t, refresh)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), 10)

	t.Run("wrong old password leaves hash unchanged", func(t *testing.T) {
		user := &model.User{ID: 1, Username: "alice", PasswordHash: string(oldHash)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)

		svc := newAuthService(mockRepo, new(MockResetTokenRepository), new(MockTokenStore), new(MockMailer))
		err := svc.ChangePassword(context.Background(), 1, "wrongold", "newpassword")

		assert.Equal(t, apperrors.ErrWrongOldPassword, err)
		assert.Equal(t, string(oldHash), user.PasswordHash)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("correct old password replaces hash", func(t *testing.T) {
		user := &model.User{ID: 1, Username: "alice", PasswordHash: string(oldHash)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		svc := newAuthService(mockRepo, new(MockResetTokenRepository), new(MockTokenStore), new(MockMailer))
		err := svc.ChangePassword(context.Background(), 1, "oldpassword", "newpassword")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("known username creates token and emails link", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
		}, nil)

		mockTokens := new(MockResetTokenRepository)
		mockTokens.On("Create", mock.Anything, mock.AnythingOfType("*model.PasswordResetToken")).Return(nil)

		mockMailer := new(MockMailer)
		mockMailer.On("Send", "alice@example.com", "Password Reset", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "user_id=1&token=generated-token")
		})).Return(nil)

		svc := newAuthService(mockRepo, mockTokens, new(MockTokenStore), mockMailer)
		err := svc.ForgotPassword(context.Background(), "alice")

		assert.NoError(t, err)
		mockTokens.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("unknown username is silently absorbed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		mockTokens := new(MockResetTokenRepository)
		mockMailer := new(MockMailer)

		svc := newAuthService(mockRepo, mockTokens, new(MockTokenStore), mockMailer)
		err := svc.ForgotPassword(context.Background(), "ghost")

		assert.NoError(t, err)
		mockTokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mail failure is not surfaced", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
		}, nil)

		mockTokens := new(MockResetTokenRepository)
		mockTokens.On("Create", mock.Anything, mock.Anything).Return(nil)

		mockMailer := new(MockMailer)
		mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		svc := newAuthService(mockRepo, mockTokens, new(MockTokenStore), mockMailer)
		err := svc.ForgotPassword(context.Background(), "alice")

		assert.NoError(t, err)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), 10)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	setNow := func(svc AuthService, t time.Time) {
		svc.(*authService).now = func() time.Time { return t }
	}

	t.Run("valid token resets password and deletes token", func(t *testing.T) {
		user := &model.User{ID: 1, Username: "alice", PasswordHash: string(oldHash)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		mockTokens := new(MockResetTokenRepository)
		mockTokens.On("FindByUserAndToken", mock.Anything, uint(1), "tok").Return(&model.PasswordResetToken{
			ID:        9,
			UserID:    1,
			Token:     "tok",
			CreatedAt: now.Add(-59 * time.Minute),
		}, nil)
		mockTokens.On("Delete", mock.Anything, uint(9)).Return(nil)

		svc := newAuthService(mockRepo, mockTokens, new(MockTokenStore), new(MockMailer))
		setNow(svc, now)

		err := svc.ResetPassword(context.Background(), 1, "tok", "brandnewpass")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("brandnewpass")))
		mockTokens.AssertExpectations(t)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		user := &model.User{ID: 1, Username: "alice", PasswordHash: string(oldHash)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)

		mockTokens := new(MockResetTokenRepository)
		mockTokens.On("FindByUserAndToken", mock.Anything, uint(1), "tok").Return(&model.PasswordResetToken{
			ID:        9,
			UserID:    1,
			Token:     "tok",
			CreatedAt: now.Add(-61 * time.Minute),
		}, nil)

		svc := newAuthService(mockRepo, mockTokens, new(MockTokenStore), new(MockMailer))
		setNow(svc, now)

		err := svc.ResetPassword(context.Background(), 1, "tok", "brandnewpass")
		assert.Equal(t, apperrors.ErrResetTokenExpired, err)
		assert.Equal(t, string(oldHash), user.PasswordHash)
		mockTokens.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown token reads as invalid token or user", func(t *testing.T) {
		user := &model.User{ID: 1, Username: "alice", PasswordHash: string(oldHash)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)

		mockTokens := new(MockResetTokenRepository)
		mockTokens.On("FindByUserAndToken", mock.Anything, uint(1), "consumed").Return(nil, gorm.ErrRecordNotFound)

		svc := newAuthService(mockRepo, mockTokens, new(MockTokenStore), new(MockMailer))
		err := svc.ResetPassword(context.Background(), 1, "consumed", "brandnewpass")

		assert.Equal(t, apperrors.ErrInvalidResetToken, err)
	})

	t.Run("unknown user reads as invalid token or user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := newAuthService(mockRepo, new(MockResetTokenRepository), new(MockTokenStore), new(MockMailer))
		err := svc.ResetPassword(context.Background(), 99, "tok", "brandnewpass")

		assert.Equal(t, apperrors.ErrInvalidResetToken, err)
	})
}

func TestAuthService_DeleteAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

	svc := newAuthService(mockRepo, new(MockResetTokenRepository), new(MockTokenStore), new(MockMailer))
	username, err := svc.DeleteAccount(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("valid refresh token issues new access token", func(t *testing.T) {
		tokenID, refresh, err := jwtService.GenerateRefreshToken(1, "alice", false)
		assert.NoError(t, err)

		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "alice", false, nil)

		svc := newAuthService(new(MockUserRepository), new(MockResetTokenRepository), mockStore, new(MockMailer))
		access, err := svc.RefreshToken(context.Background(), refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
	})

	t.Run("refresh token missing from store is rejected", func(t *testing.T) {
		tokenID, refresh, err := jwtService.GenerateRefreshToken(1, "alice", false)
		assert.NoError(t, err)

		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", false, assert.AnError)

		svc := newAuthService(new(MockUserRepository), new(MockResetTokenRepository), mockStore, new(MockMailer))
		_, err = svc.RefreshToken(context.Background(), refresh)

		assert.Equal(t, apperrors.ErrInvalidCredentials, err)
	})
}
