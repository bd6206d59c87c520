package usecase

import (
	"context"
	"time"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/infrastructure/metrics"
)

// CategoryUseCase handles household expense categories.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator, metrics *metrics.Metrics) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
		metrics:      metrics,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	HouseholdID string
	Name        string
}

// CreateCategory adds a custom category to a household.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if err := domain.ValidateHouseholdID(input.HouseholdID); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:          uc.idGen.Generate(),
		HouseholdID: input.HouseholdID,
		Name:        input.Name,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CategoriesCreated.Inc()
	}

	return category, nil
}

// DeleteCategory removes a household's custom category.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, householdID, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if category.HouseholdID != householdID {
		return domain.ErrCategoryNotFound
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.CategoriesDeleted.Inc()
	}

	return nil
}

// ListCategories lists a household's custom categories.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, householdID string) ([]domain.Category, error) {
	if err := domain.ValidateHouseholdID(householdID); err != nil {
		return nil, err
	}

	return uc.categoryRepo.ListByHousehold(ctx, householdID)
}

// CategoryOptions returns the category names offered in entry forms:
// the built-in defaults followed by the household's custom categories.
// A custom category that shadows a default is listed once.
func (uc *CategoryUseCase) CategoryOptions(ctx context.Context, householdID string) ([]string, error) {
	categories, err := uc.ListCategories(ctx, householdID)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, len(domain.DefaultCategories)+len(categories))
	seen := make(map[string]struct{}, len(domain.DefaultCategories)+len(categories))

	for _, name := range domain.DefaultCategories {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			options = append(options, name)
		}
	}
	for _, c := range categories {
		if _, ok := seen[c.Name]; !ok {
			seen[c.Name] = struct{}{}
			options = append(options, c.Name)
		}
	}

	return options, nil
}
