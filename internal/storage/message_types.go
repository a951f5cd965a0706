package storage

import "time"

// CVImportCompletedEvent 简历导入完成事件
// 通过 outbox 中继发布到导入事件交换机
type CVImportCompletedEvent struct {
	ImportUUID            string    `json:"import_uuid"`                        // 导入UUID，主键
	ImportedAt            time.Time `json:"imported_at"`                        // 导入时间
	OriginalFilename      string    `json:"original_filename"`                  // 原始文件名
	FileFormat            string    `json:"file_format"`                        // pdf / docx / text
	FileMD5               string    `json:"file_md5,omitempty"`                 // 原始文件MD5，用于失败时回滚登记
	OriginalFileObjectKey string    `json:"original_file_object_key,omitempty"` // 原始文件在MinIO中的对象键
	RawTextObjectKey      string    `json:"raw_text_object_key,omitempty"`      // 提取文本在MinIO中的对象键
	Confidence            int       `json:"confidence"`                         // 解析置信度 0-100
	ProcessingStatus      string    `json:"processing_status,omitempty"`        // 处理状态
	ParserVersion         string    `json:"parser_version,omitempty"`           // 解析器版本
}
