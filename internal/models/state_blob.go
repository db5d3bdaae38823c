package models

import "time"

// StateBlob 状态镜像表（键值对存储，值为 JSON 原文）
// 购物车与订单历史各占一个键，按属主分片（cart:<owner> / orders:<owner>）。
// 无 schema 版本号，读取方必须防御性解析。
type StateBlob struct {
	Key       string    `gorm:"primarykey" json:"key"`        // 镜像键
	Value     string    `gorm:"type:text;not null" json:"-"`  // JSON 原文
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`      // 更新时间
}

// TableName 指定表名
func (StateBlob) TableName() string {
	return "state_blobs"
}
