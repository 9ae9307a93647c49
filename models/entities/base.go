package entities

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 所有表共用的主键、时间戳与软删除字段
type BaseModel struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MediaRef 对象存储中的一个媒体文件
// - Title: 上传时的原始文件名
// - ObjectKey: COS 对象键，替换或删除时用于清理旧文件
type MediaRef struct {
	Title     string `gorm:"type:varchar(255)" json:"title"`
	URL       string `gorm:"type:varchar(512)" json:"url"`
	ObjectKey string `gorm:"type:varchar(255)" json:"object_key"`
}
