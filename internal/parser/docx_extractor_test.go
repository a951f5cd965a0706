package parser

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDOCX 在内存中构造一个只含 word/document.xml 的最小OOXML包
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// TestExtractDOCXText 验证按文档顺序收集w:t文本，段落结束补换行
func TestExtractDOCXText(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Developer</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ExtractDOCXText(buildDOCX(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Developer\n", text)
}

// TestExtractDOCXTextBreaksAndTabs 显式换行和制表符保留
func TestExtractDOCXTextBreaksAndTabs(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>first</w:t><w:br/><w:t>second</w:t><w:tab/><w:t>third</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ExtractDOCXText(buildDOCX(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\tthird\n", text)
}

// TestExtractDOCXTextIgnoresNonTextNodes w:t之外的字符数据不进结果
func TestExtractDOCXTextIgnoresNonTextNodes(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    ignored stray text
    <w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>kept</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ExtractDOCXText(buildDOCX(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "kept\n", text)
}

// TestExtractDOCXTextNotAZip 非zip字节返回错误
func TestExtractDOCXTextNotAZip(t *testing.T) {
	_, err := ExtractDOCXText([]byte("this is definitely not a zip archive"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCX")
}

// TestExtractDOCXTextMissingDocument 缺少word/document.xml的包返回错误
func TestExtractDOCXTextMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractDOCXText(buf.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

// TestExtractDOCXTextTruncatedXML 截断的XML返回解码错误
func TestExtractDOCXTextTruncatedXML(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>partial`

	_, err := ExtractDOCXText(buildDOCX(t, doc))
	require.Error(t, err)
}
