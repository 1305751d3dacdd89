package meta

import (
	"time"

	"gorm.io/datatypes"
)

// StoredObject 是去重后的物理实体：一份字节 + 一个引用计数
// 同一个 Digest 在表中至多一行 (唯一索引兜底并发创建)
type StoredObject struct {
	// ID 是不透明的 UUID，不是摘要
	ID string `gorm:"primaryKey;type:varchar(36)"`

	Digest    string `gorm:"uniqueIndex;type:varchar(64);not null"`
	Algorithm string `gorm:"type:varchar(16);not null"`

	// Location 是 Storage Backend 返回的句柄，元数据层不解析它
	Location string `gorm:"type:varchar(255);not null"`

	// HolderID 是字节实际所在 key 对应的记录 (canonical holder)
	HolderID string `gorm:"type:varchar(36)"`

	Size int64

	// ReferenceCount 只允许通过 reference_count ± 1 的表达式修改
	ReferenceCount int64 `gorm:"not null;default:0;index"`

	CreatedAt time.Time `gorm:"index"`
}

func (StoredObject) TableName() string {
	return "stored_objects"
}

// FileRecord 是用户可见的文件条目
// 它永远指向且只指向一个 StoredObject
type FileRecord struct {
	ID string `gorm:"primaryKey;type:varchar(36)"`

	StoredObjectID string        `gorm:"index;type:varchar(36);not null"`
	StoredObject   *StoredObject `gorm:"foreignKey:StoredObjectID;constraint:OnDelete:RESTRICT"`

	// 展示属性 (B-Tree 索引，支持过滤和排序)
	OriginalFilename string    `gorm:"index;type:varchar(255)"`
	FileType         string    `gorm:"index;type:varchar(100)"`
	Size             int64     `gorm:"index"`
	UploadedAt       time.Time `gorm:"index"`

	// Labels 是客户端自带的任意 JSON 对象
	Labels datatypes.JSON
}

func (FileRecord) TableName() string {
	return "files_metadata"
}

// Models 返回需要迁移的全部模型
func Models() []any {
	return []any{&StoredObject{}, &FileRecord{}}
}
