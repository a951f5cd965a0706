package importer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"cv-import-go/internal/parser"
	"cv-import-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTextExtractor 测试用文本提取器模拟器
type MockTextExtractor struct {
	// 预设的提取结果
	Text string
	// 预设的错误
	Err error
	// 记录调用入参，便于断言
	GotFilename    string
	GotContentType string
	CallCount      int
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, reader io.Reader, filename, contentType string) (string, error) {
	m.CallCount++
	m.GotFilename = filename
	m.GotContentType = contentType
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockCVParser 测试用解析器模拟器
type MockCVParser struct {
	Data       *types.ResumeData
	Confidence int
	GotText    string
	CallCount  int
}

func (m *MockCVParser) Parse(text string) (*types.ResumeData, int) {
	m.CallCount++
	m.GotText = text
	if m.Data == nil {
		return types.NewResumeData(), m.Confidence
	}
	return m.Data, m.Confidence
}

// TestNewCVImporterValidation 组件缺失时创建失败
func TestNewCVImporterValidation(t *testing.T) {
	_, err := NewCVImporter(nil, nil)
	assert.Error(t, err)

	_, err = NewCVImporter(&Components{Parser: &MockCVParser{}}, nil)
	assert.Error(t, err)

	_, err = NewCVImporter(&Components{Extractor: &MockTextExtractor{}}, nil)
	assert.Error(t, err)

	imp, err := NewCVImporter(&Components{Extractor: &MockTextExtractor{}, Parser: &MockCVParser{}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, imp)
}

// TestImportCVHappyPath 提取和解析结果按原样装入返回信封
func TestImportCVHappyPath(t *testing.T) {
	data := types.NewResumeData()
	data.PersonalInfo.Email = "jane@example.com"

	extractor := &MockTextExtractor{Text: "Jane Doe\njane@example.com"}
	cvParser := &MockCVParser{Data: data, Confidence: 35}

	imp, err := NewCVImporter(&Components{Extractor: extractor, Parser: cvParser}, &Settings{})
	require.NoError(t, err)

	result, err := imp.ImportCV(context.Background(), strings.NewReader("raw"), "resume.txt", "text/plain")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane@example.com", result.Text)
	assert.Equal(t, 35, result.Confidence)
	assert.Same(t, data, result.Data)

	// 组件各被调用一次，入参透传
	assert.Equal(t, 1, extractor.CallCount)
	assert.Equal(t, "resume.txt", extractor.GotFilename)
	assert.Equal(t, "text/plain", extractor.GotContentType)
	assert.Equal(t, 1, cvParser.CallCount)
	assert.Equal(t, "Jane Doe\njane@example.com", cvParser.GotText)
}

// TestImportCVUnsupportedFormatPassthrough 类型化的格式错误原样返回，不做包装
func TestImportCVUnsupportedFormatPassthrough(t *testing.T) {
	formatErr := &parser.UnsupportedFormatError{Filename: "resume.doc", ContentType: "application/msword"}
	extractor := &MockTextExtractor{Err: formatErr}
	cvParser := &MockCVParser{}

	imp, err := NewCVImporter(&Components{Extractor: extractor, Parser: cvParser}, nil)
	require.NoError(t, err)

	result, err := imp.ImportCV(context.Background(), strings.NewReader(""), "resume.doc", "application/msword")
	assert.Nil(t, result)
	require.Error(t, err)

	// 调用方依赖errors.As识别该错误并映射为415
	var unsupported *parser.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "resume.doc", unsupported.Filename)

	// 解析器不应被触达
	assert.Zero(t, cvParser.CallCount)
}

// TestImportCVExtractionFailureWrapped 解码失败被包装为导入错误，无部分结果
func TestImportCVExtractionFailureWrapped(t *testing.T) {
	extractor := &MockTextExtractor{Err: errors.New("pdf is encrypted")}
	cvParser := &MockCVParser{}

	imp, err := NewCVImporter(&Components{Extractor: extractor, Parser: cvParser}, nil)
	require.NoError(t, err)

	result, err := imp.ImportCV(context.Background(), strings.NewReader(""), "resume.pdf", "application/pdf")
	assert.Nil(t, result)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrImportFailed))
	assert.Contains(t, err.Error(), "resume.pdf")
	assert.Contains(t, err.Error(), "pdf is encrypted")
	assert.Zero(t, cvParser.CallCount)
}

// TestImportCVEmptyTextStillSucceeds 空文本不报错，置信分交由解析器决定
func TestImportCVEmptyTextStillSucceeds(t *testing.T) {
	extractor := &MockTextExtractor{Text: ""}
	cvParser := &MockCVParser{Confidence: 0}

	imp, err := NewCVImporter(&Components{Extractor: extractor, Parser: cvParser}, nil)
	require.NoError(t, err)

	result, err := imp.ImportCV(context.Background(), strings.NewReader(""), "empty.txt", "text/plain")
	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
	assert.NotNil(t, result.Data)
}

// TestImportErrorIs 导入错误支持errors.Is比较基础错误
func TestImportErrorIs(t *testing.T) {
	err := NewExtractError("resume.pdf", "截断的文件")
	assert.True(t, errors.Is(err, ErrExtractTextFailed))
	assert.False(t, errors.Is(err, ErrImportFailed))
	assert.Contains(t, err.Error(), "resume.pdf")
	assert.Contains(t, err.Error(), "extract")

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, "resume.pdf", importErr.Filename)
}
