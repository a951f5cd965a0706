package parser

import (
	"cv-import-go/internal/types"
)

// sectionWindow 一个章节的内容行窗口
// 从标题行的下一行起，到下一个被识别的章节标题（按文本位置，不按语义顺序）
// 或文档结尾为止；教育在经历之前出现时窗口边界同样成立，不会出现负长度
type sectionWindow struct {
	Kind        types.SectionKind
	HeadingLine int
	Start       int // 含
	End         int // 不含
}

// locateSections 扫描全部行，定位每类章节第一次出现的标题行并计算窗口
// 未找到的章节不出现在结果里（跳过，不报错）
func (p *StructuredCVParser) locateSections(lines []string) map[types.SectionKind]sectionWindow {
	headings := make(map[types.SectionKind]int)
	for i, line := range lines {
		if line == "" {
			continue
		}
		kind, ok := p.patterns.matchSection(line)
		if !ok {
			continue
		}
		if _, seen := headings[kind]; !seen {
			headings[kind] = i
		}
	}

	windows := make(map[types.SectionKind]sectionWindow, len(headings))
	for kind, at := range headings {
		end := len(lines)
		for other, otherAt := range headings {
			if other == kind || otherAt <= at {
				continue
			}
			if otherAt < end {
				end = otherAt
			}
		}
		windows[kind] = sectionWindow{
			Kind:        kind,
			HeadingLine: at,
			Start:       at + 1,
			End:         end,
		}
	}
	return windows
}

// joinWindowText 把窗口内的非空行拼成一段文本
func joinWindowText(lines []string, w sectionWindow) string {
	out := ""
	for i := w.Start; i < w.End && i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += lines[i]
	}
	return out
}
