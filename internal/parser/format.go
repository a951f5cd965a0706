package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileFormat 上传文件的识别结果
type FileFormat string

const (
	// FormatPDF PDF文档
	FormatPDF FileFormat = "pdf"
	// FormatDOCX OOXML Word文档
	FormatDOCX FileFormat = "docx"
	// FormatText 纯文本
	FormatText FileFormat = "txt"
	// FormatUnknown 无法识别或不支持的格式
	FormatUnknown FileFormat = "unknown"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// UnsupportedFormatError 不支持的文件格式
// 在任何解码动作之前抛出，错误信息中携带检测到的类型
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	detected := strings.ToLower(filepath.Ext(e.Filename))
	if detected == "" {
		detected = e.ContentType
	}
	if detected == "" {
		detected = "unknown"
	}
	return fmt.Sprintf("unsupported CV format: %s (only pdf/docx/txt are accepted)", detected)
}

// DetectFormat 根据MIME类型和文件扩展名识别格式
// MIME优先，扩展名兜底；两者都无法识别时返回 FormatUnknown
func DetectFormat(filename, contentType string) FileFormat {
	// Content-Type 可能携带 "; charset=utf-8" 一类的参数
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch mime {
	case mimePDF:
		return FormatPDF
	case mimeDOCX:
		return FormatDOCX
	case mimeText:
		return FormatText
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatText
	}
	return FormatUnknown
}
