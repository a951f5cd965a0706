package parser

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingReader 任何Read调用都报错，用于验证快速失败路径
type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("read should not have been attempted")
}

func newTestExtractor(t *testing.T) *CVTextExtractor {
	t.Helper()
	e, err := NewCVTextExtractor(context.Background(), WithExtractorLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	return e
}

// TestNewCVTextExtractorNilLogger nil logger选项不覆盖默认logger
func TestNewCVTextExtractorNilLogger(t *testing.T) {
	e, err := NewCVTextExtractor(context.Background(), WithExtractorLogger(nil))
	require.NoError(t, err)
	require.NotNil(t, e.logger)

	text, err := e.ExtractText(context.Background(), strings.NewReader("plain"), "a.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", text)
}

// TestExtractTextPlainTextIdentity 纯文本走恒等路径，一个字节都不动
func TestExtractTextPlainTextIdentity(t *testing.T) {
	e := newTestExtractor(t)

	content := "Jane Doe\r\n\tSenior  Developer \nraw   bytes untouched"
	text, err := e.ExtractText(context.Background(), strings.NewReader(content), "resume.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

// TestExtractTextDOCXRoute DOCX按格式分发到OOXML解包
func TestExtractTextDOCXRoute(t *testing.T) {
	e := newTestExtractor(t)

	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p></w:body></w:document>`
	data := buildDOCX(t, doc)

	text, err := e.ExtractText(context.Background(), strings.NewReader(string(data)), "resume.docx", "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n", text)
}

// TestExtractTextUnsupportedBeforeRead 不支持的格式在读取任何内容之前就拒绝
func TestExtractTextUnsupportedBeforeRead(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractText(context.Background(), failingReader{}, "resume.doc", "application/msword")
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "resume.doc", unsupported.Filename)
	assert.Equal(t, "application/msword", unsupported.ContentType)
}

// TestExtractTextReadFailurePropagated 支持的格式读取失败时错误原样向上
func TestExtractTextReadFailurePropagated(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractText(context.Background(), failingReader{}, "resume.txt", "text/plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume.txt")

	var unsupported *UnsupportedFormatError
	assert.False(t, errors.As(err, &unsupported))
}

// TestExtractTextCorruptDOCXPropagated 损坏的DOCX解码错误原样向上传播
func TestExtractTextCorruptDOCXPropagated(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractText(context.Background(), strings.NewReader("not a zip"), "resume.docx", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCX")
}
