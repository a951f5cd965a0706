package parser

import (
	"regexp"
	"strings"

	"cv-import-go/internal/types"
)

const (
	maxSkillLineLen    = 50
	skillsFallbackSpan = 20 // 窗口没有下界时从标题起最多看20行
	skillCategory      = "Technical"
	skillLevel         = "intermediate"
)

var fourDigitNumber = regexp.MustCompile(`\d{4}`)

// extractSkills 从技能窗口提取技能条目，无状态
//
// 两条独立来源：窗口内每个长度小于50、不含"@"也不含四位数字的非空行按
// 字面收录；预置关键词表对窗口文本做词边界、不区分大小写的匹配，命中即
// 以规范写法收录（不要求单独成行）。结果按展示字符串原样去重，同一技能
// 的大小写变体会同时保留，之后分配调用内顺序id和固定的类别/熟练度。
func (p *StructuredCVParser) extractSkills(lines []string, w sectionWindow) []types.SkillEntry {
	end := w.End
	if end >= len(lines) {
		end = len(lines)
	}
	// 没有后续章节托底时，回退为从标题起固定20行
	if w.End >= len(lines) && w.Start+skillsFallbackSpan < end {
		end = w.Start + skillsFallbackSpan
	}

	seen := make(map[string]bool)
	names := []string{}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	var windowText strings.Builder
	for i := w.Start; i < end && i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		windowText.WriteString(line)
		windowText.WriteString("\n")

		if len(line) < maxSkillLineLen && !strings.Contains(line, "@") && !fourDigitNumber.MatchString(line) {
			add(line)
		}
	}

	text := windowText.String()
	for _, kw := range p.patterns.SkillKeywords {
		if kw.Pattern.MatchString(text) {
			add(kw.Display)
		}
	}

	skills := make([]types.SkillEntry, 0, len(names))
	for i, name := range names {
		skills = append(skills, types.SkillEntry{
			ID:       i + 1,
			Name:     name,
			Category: skillCategory,
			Level:    skillLevel,
		})
	}
	return skills
}
