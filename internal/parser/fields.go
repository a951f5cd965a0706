package parser

import (
	"strings"

	"cv-import-go/internal/types"
)

// 姓名/地点扫描只看文档开头若干行
const (
	nameScanLines     = 10
	locationScanLines = 20
	maxNameLineLen    = 50
	maxLocationLen    = 50
	maxSummaryLineLen = 100
)

// extractContactFields 不依赖章节边界，机会式地从全文抽取联系信息
// 每个子步骤返回 (结果, 得分增量)，未命中时留空且不加分，从不报错
func (p *StructuredCVParser) extractContactFields(text string, lines []string) (types.PersonalInfo, int) {
	var info types.PersonalInfo
	score := 0

	email, delta := p.extractEmail(text)
	info.Email = email
	score += delta

	phone, delta := p.extractPhone(text)
	info.Phone = phone
	score += delta

	info.Location = p.extractLocation(lines)

	linkedin, github, delta := p.extractLinks(text)
	info.LinkedIn = linkedin
	info.GitHub = github
	score += delta

	first, last, summary, delta := p.extractNameAndSummary(lines)
	info.FirstName = first
	info.LastName = last
	info.Summary = summary
	score += delta

	return info, score
}

// extractEmail 取全文第一个形如 local@domain.tld 的匹配
func (p *StructuredCVParser) extractEmail(text string) (string, int) {
	if m := p.patterns.Email.FindString(text); m != "" {
		return m, ScoreEmail
	}
	return "", 0
}

// extractPhone 取第一个宽松的电话号码匹配
// 只把内部连续空白压成单个空格，不重排为E.164
func (p *StructuredCVParser) extractPhone(text string) (string, int) {
	m := p.patterns.Phone.FindString(text)
	if m == "" {
		return "", 0
	}
	normalized := strings.Join(strings.Fields(m), " ")
	return normalized, ScorePhone
}

// extractLocation 在开头20行里找 "City, Region" 形状的大写词对
// 跳过含 "@" 或超过50字符的候选，第一个可用的即采纳；地点不计分
func (p *StructuredCVParser) extractLocation(lines []string) string {
	limit := locationScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if line == "" || strings.Contains(line, "@") || len(line) > maxLocationLen {
			continue
		}
		if p.patterns.Location.MatchString(line) {
			return line
		}
	}
	return ""
}

// extractLinks 匹配 linkedin/github 链接并用捕获到的handle重建短链
func (p *StructuredCVParser) extractLinks(text string) (string, string, int) {
	var linkedin, github string
	score := 0

	if m := p.patterns.LinkedIn.FindStringSubmatch(text); len(m) > 1 {
		linkedin = "linkedin.com/in/" + m[1]
		score += ScoreLinkedIn
	}
	if m := p.patterns.GitHub.FindStringSubmatch(text); len(m) > 1 {
		github = "github.com/" + m[1]
		score += ScoreGitHub
	}
	return linkedin, github, score
}

// extractNameAndSummary 在开头10行里找2-4个首字母大写单词组成的短行作为姓名
// 第一个token是名，其余拼成姓；紧随其后的一行若是不含 "@" 的合理长度文本，
// 则暂定为职业概要/头衔
func (p *StructuredCVParser) extractNameAndSummary(lines []string) (string, string, string, int) {
	limit := nameScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		line := lines[i]
		if line == "" || len(line) >= maxNameLineLen || strings.Contains(line, "@") {
			continue
		}
		if !p.patterns.NameLine.MatchString(line) {
			continue
		}

		tokens := strings.Fields(line)
		first := tokens[0]
		last := strings.Join(tokens[1:], " ")

		summary := ""
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if next == "" {
				continue
			}
			if !strings.Contains(next, "@") && len(next) >= 5 && len(next) <= maxSummaryLineLen {
				summary = next
			}
			break
		}

		return first, last, summary, ScoreName
	}
	return "", "", "", 0
}
