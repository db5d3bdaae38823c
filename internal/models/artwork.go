package models

import (
	"time"

	"gorm.io/gorm"
)

// Artwork 艺术品表
type Artwork struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Title       string         `gorm:"not null" json:"title"`                                     // 作品标题
	ArtistName  string         `gorm:"index" json:"artist_name"`                                  // 艺术家名称
	Description string         `gorm:"type:text" json:"description"`                              // 作品描述
	Category    string         `gorm:"type:varchar(50);index" json:"category"`                    // 作品分类
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	Sizes       StringArray    `gorm:"type:json" json:"sizes"`                                    // 可选尺寸
	Formats     StringArray    `gorm:"type:json" json:"formats"`                                  // 可选装裱格式
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Artwork) TableName() string {
	return "artworks"
}

// PrimaryImage 返回首图（无图时为空串）
func (a Artwork) PrimaryImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}
