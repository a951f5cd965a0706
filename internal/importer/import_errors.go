package importer

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrExtractTextFailed = errors.New("提取简历文本失败")
	ErrImportFailed      = errors.New("导入简历失败")
)

// ImportError 包含详细上下文的导入错误
type ImportError struct {
	Filename string
	Op       string
	BaseErr  error
	Detail   string
}

func (e *ImportError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.Filename, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.Filename)
}

func (e *ImportError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ImportError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// NewExtractError 构造文本提取阶段的错误
func NewExtractError(filename, detail string) error {
	return &ImportError{
		Filename: filename,
		Op:       "extract",
		BaseErr:  ErrExtractTextFailed,
		Detail:   detail,
	}
}

// NewImportError 构造导入边界处的错误
func NewImportError(filename, detail string) error {
	return &ImportError{
		Filename: filename,
		Op:       "import",
		BaseErr:  ErrImportFailed,
		Detail:   detail,
	}
}
