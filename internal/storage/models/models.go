package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// CVImport 简历导入记录表
// 每次成功导入（含重复跳过之前的首次导入）对应一行
type CVImport struct {
	ImportUUID            string         `gorm:"type:char(36);primaryKey"`
	OriginalFilename      string         `gorm:"type:varchar(255)"`
	ContentType           string         `gorm:"type:varchar(100)"`
	FileFormat            string         `gorm:"type:varchar(10)"`
	FileSizeBytes         int64          `gorm:"type:bigint"`
	FileMD5               string         `gorm:"type:char(32);index:idx_cvi_file_md5"`
	OriginalFileObjectKey string         `gorm:"type:varchar(1024)"`
	RawTextObjectKey      string         `gorm:"type:varchar(1024)"`
	RawTextMD5            string         `gorm:"type:char(32);index:idx_cvi_raw_text_md5"`
	ParsedDataJSON        datatypes.JSON `gorm:"type:json"`
	Confidence            int            `gorm:"type:int;default:0"`
	ProcessingStatus      string         `gorm:"type:varchar(50);default:'IMPORTED';index:idx_cvi_processing_status"`
	ParserVersion         string         `gorm:"type:varchar(50)"`
	ImportedAt            time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_cvi_imported_at"`
	CreatedAt             time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt             time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (CVImport) TableName() string {
	return "cv_imports"
}

// OutboxMessage 待异步发布的事件消息
// 与业务写入同事务落库，由中继器轮询发布
type OutboxMessage struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement"`
	AggregateID      string     `gorm:"type:varchar(36);not null;index"`
	EventType        string     `gorm:"type:varchar(255);not null"`
	Payload          string     `gorm:"type:json;not null"`
	TargetExchange   string     `gorm:"type:varchar(255);not null"`
	TargetRoutingKey string     `gorm:"type:varchar(255);not null"`
	Status           string     `gorm:"type:varchar(20);default:'PENDING';not null;index:idx_outbox_status_created_at"`
	RetryCount       int        `gorm:"default:0"`
	CreatedAt        time.Time  `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_outbox_status_created_at,sort:asc"`
	ProcessedAt      *time.Time `gorm:"type:datetime(6);null"`
	ErrorMessage     string     `gorm:"type:text"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// StringToJSON 将字符串转换为 datatypes.JSON
func StringToJSON(s string) datatypes.JSON {
	return datatypes.JSON(s)
}

// MapToJSON 将 map[string]interface{} 转换为 datatypes.JSON
func MapToJSON(m map[string]interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// StructToJSON 将任意可序列化结构转换为 datatypes.JSON
func StructToJSON(v interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
