package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "greenboard/internal/errors"
	"greenboard/internal/model"
	"greenboard/internal/repository"
)

// CatalogService handles the task and chance reference tables. Reads are
// open to everyone; the router gates writes to staff.
type CatalogService interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, id uint, task *model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error

	ListChances(ctx context.Context) ([]model.Chance, error)
	GetChance(ctx context.Context, id uint) (*model.Chance, error)
	CreateChance(ctx context.Context, chance *model.Chance) error
	UpdateChance(ctx context.Context, id uint, chance *model.Chance) (*model.Chance, error)
	DeleteChance(ctx context.Context, id uint) error

	SeedDefaults(ctx context.Context) (tasksAdded, chancesAdded int, err error)
}

type catalogService struct {
	tasks   repository.TaskRepository
	chances repository.ChanceRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(tasks repository.TaskRepository, chances repository.ChanceRepository) CatalogService {
	return &catalogService{tasks: tasks, chances: chances}
}

func (s *catalogService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}

func (s *catalogService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *catalogService) CreateTask(ctx context.Context, task *model.Task) error {
	return s.tasks.Create(ctx, task)
}

func (s *catalogService) UpdateTask(ctx context.Context, id uint, task *model.Task) (*model.Task, error) {
	existing, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Description = task.Description
	existing.ApplicableSquares = task.ApplicableSquares
	existing.ScoreToAward = task.ScoreToAward
	if err := s.tasks.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListChances(ctx context.Context) ([]model.Chance, error) {
	return s.chances.List(ctx)
}

func (s *catalogService) GetChance(ctx context.Context, id uint) (*model.Chance, error) {
	chance, err := s.chances.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrChanceNotFound
		}
		return nil, err
	}
	return chance, nil
}

func (s *catalogService) CreateChance(ctx context.Context, chance *model.Chance) error {
	return s.chances.Create(ctx, chance)
}

func (s *catalogService) UpdateChance(ctx context.Context, id uint, chance *model.Chance) (*model.Chance, error) {
	existing, err := s.GetChance(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Description = chance.Description
	existing.ScoreToAward = chance.ScoreToAward
	if err := s.chances.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteChance(ctx context.Context, id uint) error {
	if err := s.chances.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrChanceNotFound
		}
		return err
	}
	return nil
}

// allSquares covers every non-start square of the default 16-square board.
var allSquares = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// defaultTasks mirrors the catalog the game ships with.
var defaultTasks = []model.Task{
	{Description: "Use a reusable cup", ApplicableSquares: []int{3, 4, 6, 7, 8, 9, 13, 14, 15}, ScoreToAward: 5},
	{Description: "Recycle an item", ApplicableSquares: allSquares, ScoreToAward: 10},
	{Description: "Use the water fountain", ApplicableSquares: []int{3, 4, 7, 8, 9, 10, 11, 13, 14, 15}, ScoreToAward: 5},
	{Description: "Recycle used paper", ApplicableSquares: allSquares, ScoreToAward: 5},
	{Description: "Visit the green space", ApplicableSquares: []int{2, 3, 6}, ScoreToAward: 5},
	{Description: "Pick up a piece of litter", ApplicableSquares: allSquares, ScoreToAward: 5},
	{Description: "Turn off the lights", ApplicableSquares: []int{1, 2}, ScoreToAward: 5},
	{Description: "Donate to the food fridge", ApplicableSquares: []int{4}, ScoreToAward: 5},
	{Description: "Take something from the food fridge", ApplicableSquares: []int{4}, ScoreToAward: 5},
	{Description: "Turn off power outlet after use", ApplicableSquares: allSquares, ScoreToAward: 5},
	{Description: "Buy a sustainable product", ApplicableSquares: []int{1, 4}, ScoreToAward: 5},
	{Description: "Fill up your water bottle", ApplicableSquares: allSquares, ScoreToAward: 5},
	{Description: "Walk to campus", ApplicableSquares: allSquares, ScoreToAward: 5},
	{Description: "Try a vegan food", ApplicableSquares: allSquares, ScoreToAward: 5},
	{Description: "Read an article on sustainability", ApplicableSquares: allSquares, ScoreToAward: 5},
}

// defaultChances mirrors the chance deck the game ships with.
var defaultChances = []model.Chance{
	{Description: "Bonus 5 points!", ScoreToAward: 5},
	{Description: "Bonus 10 points !!", ScoreToAward: 10},
	{Description: "Bonus 15 points", ScoreToAward: 15},
	{Description: "Oh No! -5 points", ScoreToAward: -5},
	{Description: "Oh No! -10 points", ScoreToAward: -10},
	{Description: "Oh No! -15 points", ScoreToAward: -15},
}

// SeedDefaults loads the default catalogs into empty tables. Non-empty
// tables are left alone so reseeding never duplicates entries.
func (s *catalogService) SeedDefaults(ctx context.Context) (int, int, error) {
	tasksAdded := 0
	if n, err := s.tasks.Count(ctx); err != nil {
		return 0, 0, err
	} else if n == 0 {
		for i := range defaultTasks {
			task := defaultTasks[i]
			if err := s.tasks.Create(ctx, &task); err != nil {
				return tasksAdded, 0, err
			}
			tasksAdded++
		}
	}

	chancesAdded := 0
	if n, err := s.chances.Count(ctx); err != nil {
		return tasksAdded, 0, err
	} else if n == 0 {
		for i := range defaultChances {
			chance := defaultChances[i]
			if err := s.chances.Create(ctx, &chance); err != nil {
				return tasksAdded, chancesAdded, err
			}
			chancesAdded++
		}
	}

	return tasksAdded, chancesAdded, nil
}
