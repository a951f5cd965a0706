package importer

import (
	"context"
	"io"

	"cv-import-go/internal/types"
)

// TextExtractor 文件到纯文本的提取接口
// 不支持的格式必须在任何解码之前返回 parser.UnsupportedFormatError
type TextExtractor interface {
	ExtractText(ctx context.Context, reader io.Reader, filename, contentType string) (string, error)
}

// CVParser 全文到部分结构化简历的解析接口，返回数据和置信分
type CVParser interface {
	Parse(text string) (*types.ResumeData, int)
}
