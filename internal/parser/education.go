package parser

import (
	"strings"

	"cv-import-go/internal/types"
)

// parseEducation 对教育窗口内的行运行状态机，重建学历记录
//
// 学位关键词行或日期行打开/延续条目。行自身带学位关键词时存为 degree，
// 下一行（如果既不像日期也不像学位）采纳为 institution；行带日期时回看
// 一行取 institution、回看两行取 degree（后者仅在该行同样命中学位关键词
// 时才覆盖）。项目符号/破折号行直接忽略，教育条目不累积描述。
// 条目只有在 institution 非空时才会入列。
func (p *StructuredCVParser) parseEducation(lines []string, w sectionWindow) []types.EducationEntry {
	entries := []types.EducationEntry{}

	var current types.EducationEntry
	expectInstitution := false

	flush := func() {
		if current.Institution != "" {
			current.ID = len(entries) + 1
			entries = append(entries, current)
		}
		current = types.EducationEntry{}
		expectInstitution = false
	}

	for i := w.Start; i < w.End && i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		if _, isBullet := stripBullet(line); isBullet {
			continue
		}

		if p.patterns.DegreeKeyword.MatchString(line) && !p.patterns.isDateLine(line) {
			// 已有完整条目时先冲掉，再开新条目
			if current.Degree != "" || current.Institution != "" {
				flush()
			}
			current.Degree = line
			expectInstitution = true
			continue
		}

		if p.patterns.isDateLine(line) {
			current.StartDate = p.patterns.extractDateSpan(line)
			current.Current = p.patterns.CurrentKeyword.MatchString(line)

			if current.Institution == "" && i-1 >= w.Start {
				prev := lines[i-1]
				if prev != "" && !p.patterns.isDateLine(prev) && !p.patterns.DegreeKeyword.MatchString(prev) {
					if _, isBullet := stripBullet(prev); !isBullet {
						current.Institution = prev
					}
				}
			}
			if i-2 >= w.Start {
				back2 := lines[i-2]
				// 仅当回看两行同样命中学位关键词时才覆盖 degree
				if back2 != "" && p.patterns.DegreeKeyword.MatchString(back2) {
					current.Degree = back2
				}
			}
			expectInstitution = false
			continue
		}

		if expectInstitution && current.Institution == "" {
			current.Institution = line
			expectInstitution = false
			continue
		}

		// 形如 "City, Country" 的行补充为地点
		if current.Location == "" && len(line) <= maxLocationLen && !strings.Contains(line, "@") && p.patterns.Location.MatchString(line) {
			current.Location = line
		}
	}

	flush()
	return entries
}
