package service

import (
	"strings"

	"github.com/kalakriti-next/internal/models"
	"github.com/kalakriti-next/internal/repository"
)

// CatalogService 艺术品目录服务
type CatalogService struct {
	artworkRepo repository.ArtworkRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(artworkRepo repository.ArtworkRepository) *CatalogService {
	return &CatalogService{artworkRepo: artworkRepo}
}

// List 获取上架艺术品列表
func (s *CatalogService) List(filter repository.ArtworkListFilter) ([]models.Artwork, int64, error) {
	return s.artworkRepo.List(filter)
}

// GetBySlug 按 slug 获取艺术品详情
func (s *CatalogService) GetBySlug(slug string) (*models.Artwork, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	artwork, err := s.artworkRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if artwork == nil || !artwork.IsActive {
		return nil, ErrNotFound
	}
	return artwork, nil
}

// GetByID 按 ID 获取艺术品详情
func (s *CatalogService) GetByID(id uint) (*models.Artwork, error) {
	artwork, err := s.artworkRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if artwork == nil || !artwork.IsActive {
		return nil, ErrNotFound
	}
	return artwork, nil
}
