package repository

import (
	"errors"
	"time"

	"github.com/kalakriti-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBlobStore 状态镜像的数据库后端（state_blobs 表）
type GormBlobStore struct {
	db *gorm.DB
}

// NewGormBlobStore 创建数据库键值后端
func NewGormBlobStore(db *gorm.DB) *GormBlobStore {
	return &GormBlobStore{db: db}
}

// Get 读取镜像键
func (s *GormBlobStore) Get(key string) ([]byte, bool, error) {
	var blob models.StateBlob
	if err := s.db.Where("key = ?", key).First(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(blob.Value), true, nil
}

// Put 写入镜像键（不存在则创建）
func (s *GormBlobStore) Put(key string, value []byte) error {
	blob := models.StateBlob{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

// Delete 删除镜像键
func (s *GormBlobStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.StateBlob{}).Error
}
