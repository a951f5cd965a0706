package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxDocumentEntry = "word/document.xml"

// ExtractDOCXText 从OOXML包中提取纯文本，丢弃全部格式信息
// 只读取 word/document.xml：w:t 的字符内容按文档顺序收集，
// 段落(w:p)结束补换行，显式换行(w:br)和制表符(w:tab)同样保留
func ExtractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX package: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == docxDocumentEntry {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("DOCX package is missing %s", docxDocumentEntry)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", docxDocumentEntry, err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode DOCX document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
