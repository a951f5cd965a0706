package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"cv-import-go/internal/parser"
	"cv-import-go/internal/types"
)

// Components 聚合导入流程的功能组件依赖，便于集中管理和测试替换
type Components struct {
	Extractor TextExtractor // 文件到纯文本
	Parser    CVParser      // 纯文本到结构化数据
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	Debug  bool        // 是否开启调试模式
	Logger *log.Logger // 日志记录器
}

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// WithDebug 开启或关闭调试模式
func WithDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *log.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}

// CVImporter 简历导入器：提取、解析、打分的同步流水线
// 每次调用使用各自的局部累积器，调用之间没有共享可变状态
type CVImporter struct {
	Extractor TextExtractor
	Parser    CVParser

	settings *Settings
}

// NewCVImporter 创建简历导入器
func NewCVImporter(comp *Components, set *Settings, opts ...SettingOpt) (*CVImporter, error) {
	if comp == nil || comp.Extractor == nil {
		return nil, fmt.Errorf("文本提取器组件不能为空")
	}
	if comp.Parser == nil {
		return nil, fmt.Errorf("简历解析器组件不能为空")
	}
	if set == nil {
		set = &Settings{}
	}
	for _, opt := range opts {
		opt(set)
	}
	if set.Logger == nil {
		set.Logger = log.New(io.Discard, "", 0)
	}

	return &CVImporter{
		Extractor: comp.Extractor,
		Parser:    comp.Parser,
		settings:  set,
	}, nil
}

// ImportCV 对一个上传文件执行完整导入：文本提取 -> 结构化解析 -> 置信分
//
// 这是观察和上报错误的唯一边界：不支持的格式返回类型化错误，
// 解码失败记一次日志后包装重抛，不返回部分结果；
// 字段/章节未命中从不报错，只体现在置信分上。结果返回后不再被修改，
// 后续编辑归调用方所有
func (i *CVImporter) ImportCV(ctx context.Context, reader io.Reader, filename, contentType string) (*types.ParsedCV, error) {
	text, err := i.Extractor.ExtractText(ctx, reader, filename, contentType)
	if err != nil {
		var unsupported *parser.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			// 快速失败路径：解码尚未开始，类型化错误原样交给调用方
			i.settings.Logger.Printf("拒绝不支持的格式: %s (%s)", filename, contentType)
			return nil, err
		}
		i.settings.Logger.Printf("导入简历失败 (文件: %s): %v", filename, err)
		return nil, NewImportError(filename, err.Error())
	}

	data, confidence := i.Parser.Parse(text)

	if i.settings.Debug {
		i.settings.Logger.Printf("导入完成: %s, 文本 %d 字符, 置信分 %d", filename, len(text), confidence)
	}

	return &types.ParsedCV{
		Text:       text,
		Data:       data,
		Confidence: confidence,
	}, nil
}
