package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// CVTextExtractor 按文件格式分发到对应解码器的复合提取器
// PDF走Eino文本层解析，DOCX解包OOXML，纯文本原样透传
type CVTextExtractor struct {
	pdf    *EinoPDFTextExtractor
	logger *log.Logger
}

// CVTextExtractorOption 复合提取器的配置选项
type CVTextExtractorOption func(*CVTextExtractor)

// WithExtractorLogger 配置自定义日志记录器，传入nil时保留默认logger
func WithExtractorLogger(logger *log.Logger) CVTextExtractorOption {
	return func(e *CVTextExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewCVTextExtractor 创建复合文本提取器
func NewCVTextExtractor(ctx context.Context, options ...CVTextExtractorOption) (*CVTextExtractor, error) {
	pdfExtractor, err := NewEinoPDFTextExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PDF extractor: %w", err)
	}

	e := &CVTextExtractor{
		pdf:    pdfExtractor,
		logger: log.New(os.Stderr, "[文本提取] ", log.LstdFlags),
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// ExtractText 把上传文件还原成纯文本
// 不支持的格式在读取任何内容之前即返回 UnsupportedFormatError；
// 解码错误（损坏、加密、截断）原样向上传播，不做重试
func (e *CVTextExtractor) ExtractText(ctx context.Context, reader io.Reader, filename, contentType string) (string, error) {
	format := DetectFormat(filename, contentType)
	if format == FormatUnknown {
		return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file %s: %w", filename, err)
	}

	switch format {
	case FormatPDF:
		return e.pdf.ExtractTextFromReader(ctx, bytes.NewReader(data), filename)
	case FormatDOCX:
		return ExtractDOCXText(data)
	case FormatText:
		// 纯文本走恒等路径，一个字节都不动
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
	}
}
