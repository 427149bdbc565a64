package service

import "weekly-agenda/internal/model"

// CategoryService exposes the fixed category list.
type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

func (s *CategoryService) List() []model.Category {
	return model.Categories()
}
