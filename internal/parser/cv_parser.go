package parser

import (
	"io"
	"log"
	"strings"

	"cv-import-go/internal/types"
)

// StructuredCVParser 把提取出的简历全文解析成部分结构化数据
// 纯函数式的单遍解析：没有跨调用的共享状态，并发导入互不干扰
type StructuredCVParser struct {
	patterns *PatternTable
	logger   *log.Logger
}

// CVParserOption 解析器的配置选项
type CVParserOption func(*StructuredCVParser)

// WithParserLogger 配置自定义日志记录器
// 传入nil时保留静默的默认logger，Parse内部不做空指针判断
func WithParserLogger(logger *log.Logger) CVParserOption {
	return func(p *StructuredCVParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPatternTable 注入自定义启发式词表，便于测试和词表扩展
func WithPatternTable(table *PatternTable) CVParserOption {
	return func(p *StructuredCVParser) {
		p.patterns = table
	}
}

// NewStructuredCVParser 创建简历结构化解析器
func NewStructuredCVParser(options ...CVParserOption) *StructuredCVParser {
	p := &StructuredCVParser{
		patterns: DefaultPatternTable(),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Parse 对全文做单遍解析，返回部分结构化简历和置信分(0-100)
//
// 流程：联系信息抽取（不依赖章节）-> 章节定位 -> 各章节解析 -> 置信分聚合。
// 任何字段/章节未命中都不是错误，对应结构留空、置信分相应降低；
// 空文本返回全空结构和置信分0
func (p *StructuredCVParser) Parse(text string) (*types.ResumeData, int) {
	data := types.NewResumeData()
	if strings.TrimSpace(text) == "" {
		return data, 0
	}

	lines := splitTrimmedLines(text)
	score := 0

	info, delta := p.extractContactFields(text, lines)
	data.PersonalInfo = info
	score += delta

	windows := p.locateSections(lines)

	if w, ok := windows[types.KindSummary]; ok {
		if summary := joinWindowText(lines, w); summary != "" {
			data.PersonalInfo.Summary = summary
		}
	}

	if w, ok := windows[types.KindExperience]; ok {
		data.WorkExperience = p.parseExperience(lines, w)
		if len(data.WorkExperience) > 0 {
			score += ScoreExperience
		}
	}

	if w, ok := windows[types.KindEducation]; ok {
		data.Education = p.parseEducation(lines, w)
		if len(data.Education) > 0 {
			score += ScoreEducation
		}
	}

	if w, ok := windows[types.KindSkills]; ok {
		data.Skills = p.extractSkills(lines, w)
		if len(data.Skills) > 0 {
			score += ScoreSkills
		}
	}

	confidence := ClampConfidence(score)
	p.logger.Printf("简历解析完成: 经历 %d 条, 教育 %d 条, 技能 %d 条, 置信分 %d",
		len(data.WorkExperience), len(data.Education), len(data.Skills), confidence)

	return data, confidence
}

// splitTrimmedLines 按行切分并去掉每行首尾空白
// 所有启发式都在去空白后的行上工作，原始全文由调用方另行保留
func splitTrimmedLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
