package service

import (
	"context"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/repository"
)

// CatalogService serves the reference lists integrations use to label
// platform users.
type CatalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Industries(ctx context.Context) ([]model.Industry, error) {
	return s.store.Reference.Industries(ctx)
}

func (s *CatalogService) AgeRanges(ctx context.Context) ([]model.AgeRange, error) {
	return s.store.Reference.AgeRanges(ctx)
}
