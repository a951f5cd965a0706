package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDetectFormat 验证MIME优先、扩展名兜底的格式识别
func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        FileFormat
	}{
		{"PDF的MIME类型", "resume.bin", "application/pdf", FormatPDF},
		{"DOCX的MIME类型", "resume.bin", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatDOCX},
		{"纯文本MIME类型", "resume.bin", "text/plain", FormatText},
		{"MIME带charset参数", "resume.bin", "text/plain; charset=utf-8", FormatText},
		{"MIME大小写混合", "resume.bin", "Application/PDF", FormatPDF},
		{"MIME缺失时按扩展名识别PDF", "resume.pdf", "", FormatPDF},
		{"MIME缺失时按扩展名识别DOCX", "resume.docx", "", FormatDOCX},
		{"MIME缺失时按扩展名识别TXT", "resume.txt", "", FormatText},
		{"扩展名大小写不敏感", "Resume.PDF", "", FormatPDF},
		{"通用MIME回退到扩展名", "resume.txt", "application/octet-stream", FormatText},
		{"旧版doc不支持", "resume.doc", "application/msword", FormatUnknown},
		{"图片不支持", "photo.png", "image/png", FormatUnknown},
		{"无扩展名且无MIME", "resume", "", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.filename, tt.contentType))
		})
	}
}

// TestUnsupportedFormatError 验证错误信息携带检测到的类型
func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{Filename: "resume.doc", ContentType: "application/msword"}
	assert.Contains(t, err.Error(), ".doc")
	assert.Contains(t, err.Error(), "pdf/docx/txt")

	// 无扩展名时回退到Content-Type
	err = &UnsupportedFormatError{Filename: "resume", ContentType: "image/png"}
	assert.Contains(t, err.Error(), "image/png")

	// 两者都没有时标记为unknown
	err = &UnsupportedFormatError{}
	assert.Contains(t, err.Error(), "unknown")
}

// TestUnsupportedFormatErrorAsTarget 验证包装后仍可被errors.As还原出类型
func TestUnsupportedFormatErrorAsTarget(t *testing.T) {
	var target *UnsupportedFormatError
	base := &UnsupportedFormatError{Filename: "a.doc"}

	wrapped := errors.Join(errors.New("上层上下文"), base)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "a.doc", target.Filename)
}
