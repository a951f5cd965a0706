package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractSkillsLiteralLines 验证窗口内短行按字面收录
func TestExtractSkillsLiteralLines(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Go, Kubernetes",
		"Team leadership",
		"contact@example.com", // 含"@"的行不收录
		"Graduated 2018",      // 含四位数字的行不收录
		"This line is way too long to plausibly be a single skill entry in any resume layout",
	}
	skills := p.extractSkills(lines, fullWindow(lines))

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Go, Kubernetes")
	assert.Contains(t, names, "Team leadership")
	assert.NotContains(t, names, "contact@example.com")
	assert.NotContains(t, names, "Graduated 2018")
}

// TestExtractSkillsCuratedKeywords 预置关键词按词边界匹配，不要求单独成行
func TestExtractSkillsCuratedKeywords(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Extensive production experience with Python and PostgreSQL deployments running on AWS",
	}
	skills := p.extractSkills(lines, fullWindow(lines))

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "PostgreSQL")
	assert.Contains(t, names, "AWS")
	// "Java"不能从"JavaScript"里借词边界命中
	assert.NotContains(t, names, "Java")
}

// TestExtractSkillsWordBoundary 验证子串不会误报关键词
func TestExtractSkillsWordBoundary(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{"Wrote JavaScript widgets and automated Gormless legacy flows"}
	skills := p.extractSkills(lines, fullWindow(lines))

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "JavaScript")
	assert.NotContains(t, names, "Java")
	assert.NotContains(t, names, "Go") // "Gormless"里的Go不算
}

// TestExtractSkillsDedupeAndMetadata 重复命中去重，id为调用内顺序号
func TestExtractSkillsDedupeAndMetadata(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Docker", // 既是字面行又命中关键词表，只收录一次
		"Redis",
	}
	skills := p.extractSkills(lines, fullWindow(lines))
	require.Len(t, skills, 2)

	for i, s := range skills {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, "Technical", s.Category)
		assert.Equal(t, "intermediate", s.Level)
	}
	assert.Equal(t, "Docker", skills[0].Name)
	assert.Equal(t, "Redis", skills[1].Name)
}

// TestExtractSkillsCaseVariantsKept 按展示字符串去重，大小写变体同时保留
func TestExtractSkillsCaseVariantsKept(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{"docker"} // 字面行"docker"与规范写法"Docker"都会出现
	skills := p.extractSkills(lines, fullWindow(lines))

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "docker")
	assert.Contains(t, names, "Docker")
}

// TestExtractSkillsFallbackSpan 窗口没有下界时从标题起最多看20行
func TestExtractSkillsFallbackSpan(t *testing.T) {
	p := NewStructuredCVParser()

	lines := make([]string, 40)
	lines[0] = "Skills"
	lines[1] = "Go"
	lines[25] = "Terraform" // 在回退范围之外
	w := sectionWindow{HeadingLine: 0, Start: 1, End: len(lines)}

	skills := p.extractSkills(lines, w)
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Go")
	assert.NotContains(t, names, "Terraform")

	// 有后续章节托底时不做回退，窗口边界照常生效
	bounded := sectionWindow{HeadingLine: 0, Start: 1, End: 26}
	skills = p.extractSkills(lines, bounded)
	names = names[:0]
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Terraform")
}
