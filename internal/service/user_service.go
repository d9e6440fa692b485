package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"greenboard/internal/cache"
	apperrors "greenboard/internal/errors"
	"greenboard/internal/model"
	"greenboard/internal/repository"
)

const (
	leaderboardCacheKey = "leaderboard"
	leaderboardCacheTTL = 30 * time.Second
)

// StatsUpdate is a partial update of a user's game stats. Nil fields
// are left untouched.
type StatsUpdate struct {
	CurrentSquare *int  `json:"current_square"`
	CurrentTask   *int  `json:"current_task"`
	TaskCompleted *bool `json:"task_completed"`
	Score         *int  `json:"score"`
}

// UserUpdate is a partial update of a user's profile. IsStaff is only
// honored on the admin path.
type UserUpdate struct {
	Username *string      `json:"username"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	IsStaff  *bool        `json:"is_staff"`
	Stats    *StatsUpdate `json:"usergamestats"`
}

// UserService handles profile reads/updates, the leaderboard, and the
// staff-only user administration surface.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, update *UserUpdate, allowStaffFields bool) (*model.User, error)
	RankedUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	AdminCreateUser(ctx context.Context, username, password, email string, isStaff bool) (*model.User, error)
	AdminDeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo      repository.UserRepository
	cache     *cache.Client
	boardSize int
}

// NewUserService creates a new user service. boardSize bounds
// current_square validation.
func NewUserService(repo repository.UserRepository, cache *cache.Client, boardSize int) UserService {
	return &userService{
		repo:      repo,
		cache:     cache,
		boardSize: boardSize,
	}
}

// GetUser retrieves a user with its game stats.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update to the user row and, if present,
// the nested stats row. Square and task indexes are validated against
// the board before anything is written.
func (s *userService) UpdateUser(ctx context.Context, id uint, update *UserUpdate, allowStaffFields bool) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if st := update.Stats; st != nil {
		if st.CurrentSquare != nil && (*st.CurrentSquare < 0 || *st.CurrentSquare >= s.boardSize) {
			return nil, apperrors.ErrSquareOutOfRange
		}
		if st.CurrentTask != nil && *st.CurrentTask < -1 {
			return nil, apperrors.ErrInvalidTaskIndex
		}
	}

	if update.Username != nil && *update.Username != user.Username {
		existing, err := s.repo.FindByUsername(ctx, *update.Username)
		if err == nil && existing != nil && existing.ID != user.ID {
			return nil, apperrors.ErrUsernameTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check username: %w", err)
		}
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if allowStaffFields && update.IsStaff != nil {
		user.IsStaff = *update.IsStaff
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if st := update.Stats; st != nil && user.GameStats != nil {
		if st.CurrentSquare != nil {
			user.GameStats.CurrentSquare = *st.CurrentSquare
		}
		if st.CurrentTask != nil {
			user.GameStats.CurrentTask = *st.CurrentTask
		}
		if st.TaskCompleted != nil {
			user.GameStats.TaskCompleted = *st.TaskCompleted
		}
		if st.Score != nil {
			user.GameStats.Score = *st.Score
		}
		if err := s.repo.UpdateStats(ctx, user.GameStats); err != nil {
			return nil, fmt.Errorf("update stats: %w", err)
		}
	}

	// Any write can reorder the leaderboard.
	_ = s.cache.Delete(ctx, leaderboardCacheKey)

	return user, nil
}

// RankedUsers returns the leaderboard, best score first. The unpaginated
// result is cached briefly; paginated reads go straight to the store.
func (s *userService) RankedUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	paginated := limit > 0 || offset > 0
	if !paginated {
		if data, _ := s.cache.Get(ctx, leaderboardCacheKey); data != nil {
			var cached []model.User
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	users, err := s.repo.ListRanked(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if !paginated {
		if payload, err := json.Marshal(users); err == nil {
			_ = s.cache.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL)
		}
	}

	return users, nil
}

// ListUsers returns all users for the admin surface.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// AdminCreateUser creates a user through the same atomic constructor the
// public registration path uses, so admin-created accounts also get
// their stats row.
func (s *userService) AdminCreateUser(ctx context.Context, username, password, email string, isStaff bool) (*model.User, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
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
		IsStaff:      isStaff,
	}
	if err := s.repo.CreateWithStats(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, leaderboardCacheKey)
	return user, nil
}

// AdminDeleteUser removes a user and everything it owns.
func (s *userService) AdminDeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, leaderboardCacheKey)
	return nil
}
