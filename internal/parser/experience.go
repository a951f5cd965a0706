package parser

import (
	"strings"

	"cv-import-go/internal/types"
)

// 经历解析的行长度阈值
const (
	maxPositionLineLen    = 80
	maxCompanyLineLen     = 60
	minDescriptionLineLen = 21 // 超过20字符的行才进描述
	companyAdoptWindow    = 4  // 开条目后几行内的短行可暂定为公司名
)

// expState 经历解析状态机的状态
type expState int

const (
	// seekingEntry 尚未打开条目，等待日期行
	seekingEntry expState = iota
	// accumulatingEntry 有条目在累积中
	accumulatingEntry
)

var bulletPrefixes = []string{"•", "-", "*"}

// stripBullet 去掉行首的项目符号，未命中时返回原行和false
func stripBullet(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return line, false
}

// parseExperience 对经历窗口内的行运行状态机，重建结构化工作记录
//
// 日期行触发 seekingEntry -> accumulatingEntry：先冲掉已累积的条目
// （仅当其有公司或职位时入列），再回看——前一行暂定为职位，再前一行暂定为
// 公司（各自受长度阈值和不含"@"的约束）。累积期间按优先级依次尝试行分类器：
// 紧跟日期行的 "City, Country" 形状行作为地点；项目符号行去符号后进描述；
// 超过20字符且不是时长短语的行进描述；开条目后4行内且公司未定的短行
// 暂定为公司名。窗口结束时冲掉最后一个未关闭的条目。
//
// 这是尽力而为的重建，不是保证正确的解析：公司先于职位书写的简历会被
// 错位归因，这里保留既有行为，不在分类器之间做回溯或打分。
func (p *StructuredCVParser) parseExperience(lines []string, w sectionWindow) []types.WorkExperienceEntry {
	entries := []types.WorkExperienceEntry{}
	state := seekingEntry

	var current types.WorkExperienceEntry
	openedAt := -1   // 当前条目的日期行下标
	lastDateAt := -1 // 最近一次日期行下标，用于识别紧随其后的地点行

	flush := func() {
		if current.Company != "" || current.Position != "" {
			current.ID = len(entries) + 1
			if current.Description == nil {
				current.Description = []string{}
			}
			entries = append(entries, current)
		}
		current = types.WorkExperienceEntry{}
	}

	for i := w.Start; i < w.End && i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}

		if p.patterns.isDateLine(line) {
			if state == accumulatingEntry {
				flush()
			}
			state = accumulatingEntry
			openedAt = i
			lastDateAt = i

			current.StartDate = p.patterns.extractDateSpan(line)
			current.Current = p.patterns.CurrentKeyword.MatchString(line)

			// 回看：前一行暂定职位，再前一行暂定公司
			if i-1 >= w.Start {
				prev := lines[i-1]
				if prev != "" && len(prev) < maxPositionLineLen && !strings.Contains(prev, "@") && !p.patterns.isDateLine(prev) {
					if _, isBullet := stripBullet(prev); !isBullet {
						current.Position = prev
					}
				}
			}
			if i-2 >= w.Start {
				back2 := lines[i-2]
				if back2 != "" && len(back2) < maxCompanyLineLen && !strings.Contains(back2, "@") && !p.patterns.isDateLine(back2) {
					if _, isBullet := stripBullet(back2); !isBullet {
						current.Company = back2
					}
				}
			}
			continue
		}

		if state != accumulatingEntry {
			continue
		}

		// 分类器按优先级依次尝试
		if i == lastDateAt+1 && current.Location == "" && len(line) <= maxLocationLen && p.patterns.Location.MatchString(line) {
			current.Location = line
			continue
		}

		if text, isBullet := stripBullet(line); isBullet {
			if text != "" {
				current.Description = append(current.Description, text)
			}
			continue
		}

		if len(line) >= minDescriptionLineLen && !p.patterns.DurationPhrase.MatchString(line) {
			current.Description = append(current.Description, line)
			continue
		}

		if current.Company == "" && openedAt >= 0 && i-openedAt <= companyAdoptWindow && len(line) < maxCompanyLineLen {
			current.Company = line
		}
	}

	if state == accumulatingEntry {
		flush()
	}
	return entries
}
