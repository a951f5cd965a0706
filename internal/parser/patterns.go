package parser

import (
	"regexp"

	"cv-import-go/internal/types"
)

// SectionPattern 章节标题的匹配规则，pattern 对整行（去首尾空白后）做不区分大小写匹配
type SectionPattern struct {
	Kind    types.SectionKind
	Heading *regexp.Regexp
}

// PatternTable 解析器使用的全部启发式词表
// 集中成显式的、可单测的配置表，扩展词表时不需要改动解析流程
type PatternTable struct {
	// 联系信息
	Email    *regexp.Regexp
	Phone    *regexp.Regexp
	Location *regexp.Regexp
	LinkedIn *regexp.Regexp
	GitHub   *regexp.Regexp
	NameLine *regexp.Regexp

	// 章节标题，按声明顺序尝试
	Sections []SectionPattern

	// 日期相关
	MonthDateRange *regexp.Regexp // "Jan 2020 - Mar 2022" 之类的月份日期区间
	YearRange      *regexp.Regexp // "2020 - 2022" / "2020 - Present"
	BareYear       *regexp.Regexp // 孤立的四位年份
	DurationPhrase *regexp.Regexp // "3 years" 之类的时长短语，不计入描述
	CurrentKeyword *regexp.Regexp // present / current

	// 教育
	DegreeKeyword *regexp.Regexp

	// 技能关键词表，display 为回写到结果中的规范写法
	SkillKeywords []SkillKeyword
}

// SkillKeyword 预置技能词，Pattern 按词边界不区分大小写匹配
type SkillKeyword struct {
	Display string
	Pattern *regexp.Regexp
}

// curatedSkills 预置技能词表
// 命中即收录，不要求其单独成行
var curatedSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Go", "Golang", "Rust",
	"Ruby", "PHP", "Swift", "Kotlin", "Scala", "SQL", "HTML", "CSS",
	"React", "Angular", "Vue", "Svelte", "Django", "Flask", "Spring",
	"Rails", "Laravel", "Express", "Node.js",
	"AWS", "Azure", "GCP", "Kubernetes", "Docker", "Terraform", "Ansible",
	"Jenkins", "Git", "Linux",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka", "RabbitMQ",
	"Elasticsearch", "GraphQL", "REST", "gRPC",
	"Agile", "Scrum", "TDD", "CI/CD", "Microservices", "Machine Learning",
}

// DefaultPatternTable 返回内置的启发式词表
func DefaultPatternTable() *PatternTable {
	t := &PatternTable{
		Email:    regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		Phone:    regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`),
		Location: regexp.MustCompile(`^[A-Z][A-Za-z.\s]+,\s*[A-Z][A-Za-z.\s]+$`),
		LinkedIn: regexp.MustCompile(`(?i)linkedin\.com/in/([A-Za-z0-9_\-]+)`),
		GitHub:   regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_\-]+)`),
		NameLine: regexp.MustCompile(`^[A-Z][a-zA-Z'\-]+(\s+[A-Z][a-zA-Z.'\-]+){1,3}$`),

		Sections: []SectionPattern{
			{Kind: types.KindSummary, Heading: regexp.MustCompile(`(?i)^(summary|professional summary|profile|objective|about me?)$`)},
			{Kind: types.KindSkills, Heading: regexp.MustCompile(`(?i)^(skills|technical skills|competencies|expertise)$`)},
			{Kind: types.KindExperience, Heading: regexp.MustCompile(`(?i)^(experience|employment|professional experience|work history)$`)},
			{Kind: types.KindEducation, Heading: regexp.MustCompile(`(?i)^(education|academic background|qualifications)$`)},
		},

		MonthDateRange: regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\s*(-|–|—|to)\s*((jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|present|current|now)`),
		YearRange:      regexp.MustCompile(`(?i)\b(19|20)\d{2}\s*(-|–|—|to)\s*((19|20)\d{2}|present|current|now)\b`),
		BareYear:       regexp.MustCompile(`\b(19|20)\d{2}\b`),
		DurationPhrase: regexp.MustCompile(`(?i)^\(?\d+\+?\s*(years?|yrs?|months?|mos?)\)?$`),
		CurrentKeyword: regexp.MustCompile(`(?i)\b(present|current|now)\b`),

		DegreeKeyword: regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|doctorate|associate|diploma|b\.?sc?\.?|m\.?sc?\.?|b\.?a\.?|m\.?a\.?|mba|b\.?e\.?|b\.?tech|m\.?tech)\b`),
	}

	for _, name := range curatedSkills {
		t.SkillKeywords = append(t.SkillKeywords, SkillKeyword{
			Display: name,
			Pattern: regexp.MustCompile(`(?i)(^|[^a-zA-Z0-9])` + regexp.QuoteMeta(name) + `($|[^a-zA-Z0-9+#])`),
		})
	}
	return t
}

// matchSection 返回整行命中的章节类型
func (t *PatternTable) matchSection(trimmedLine string) (types.SectionKind, bool) {
	for _, sp := range t.Sections {
		if sp.Heading.MatchString(trimmedLine) {
			return sp.Kind, true
		}
	}
	return "", false
}

// isDateLine 判断一行是否承载日期信息
// 月份区间和年份区间是强信号；孤立年份只有在短行上才算（弱信号）
func (t *PatternTable) isDateLine(trimmedLine string) bool {
	if t.MonthDateRange.MatchString(trimmedLine) || t.YearRange.MatchString(trimmedLine) {
		return true
	}
	return len(trimmedLine) < 10 && t.BareYear.MatchString(trimmedLine)
}

// extractDateSpan 返回行内命中的原始日期子串，未命中时返回整行
func (t *PatternTable) extractDateSpan(trimmedLine string) string {
	if m := t.MonthDateRange.FindString(trimmedLine); m != "" {
		return m
	}
	if m := t.YearRange.FindString(trimmedLine); m != "" {
		return m
	}
	if m := t.BareYear.FindString(trimmedLine); m != "" {
		return m
	}
	return trimmedLine
}
