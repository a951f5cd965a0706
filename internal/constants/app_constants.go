package constants

// 导入记录的处理状态
const (
	StatusImported            = "IMPORTED"
	StatusDuplicateSkipped    = "DUPLICATE_FILE_SKIPPED"
	StatusExtractionFailed    = "TEXT_EXTRACTION_FAILED"
	StatusUnsupportedRejected = "UNSUPPORTED_FORMAT"
)

// DefaultParserVersion 配置未指定时写入导入记录的解析器版本
const DefaultParserVersion = "1.0"
