package repository

import (
	"errors"
	"strings"

	"github.com/kalakriti-next/internal/models"

	"gorm.io/gorm"
)

// ArtworkListFilter 艺术品列表过滤条件
type ArtworkListFilter struct {
	Category string
	Keyword  string
	Page     int
	PageSize int
}

// ArtworkRepository 艺术品数据访问接口
type ArtworkRepository interface {
	List(filter ArtworkListFilter) ([]models.Artwork, int64, error)
	GetBySlug(slug string) (*models.Artwork, error)
	GetByID(id uint) (*models.Artwork, error)
	Create(artwork *models.Artwork) error
}

// GormArtworkRepository GORM 实现
type GormArtworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository 创建艺术品仓库
func NewArtworkRepository(db *gorm.DB) *GormArtworkRepository {
	return &GormArtworkRepository{db: db}
}

// List 获取上架艺术品列表
func (r *GormArtworkRepository) List(filter ArtworkListFilter) ([]models.Artwork, int64, error) {
	query := r.db.Model(&models.Artwork{}).Where("is_active = ?", true)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR artist_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	var artworks []models.Artwork
	if err := query.
		Order("sort_order desc, id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&artworks).Error; err != nil {
		return nil, 0, err
	}
	return artworks, total, nil
}

// GetBySlug 根据 slug 获取艺术品
func (r *GormArtworkRepository) GetBySlug(slug string) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.Where("slug = ?", slug).First(&artwork).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

// GetByID 根据 ID 获取艺术品
func (r *GormArtworkRepository) GetByID(id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.First(&artwork, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

// Create 创建艺术品
func (r *GormArtworkRepository) Create(artwork *models.Artwork) error {
	return r.db.Create(artwork).Error
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
