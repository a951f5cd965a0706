package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractEmail 验证邮箱提取取全文第一个匹配
func TestExtractEmail(t *testing.T) {
	p := NewStructuredCVParser()

	email, score := p.extractEmail("联系方式: jane.doe+cv@example.co.uk 或 backup@other.com")
	assert.Equal(t, "jane.doe+cv@example.co.uk", email)
	assert.Equal(t, ScoreEmail, score)

	email, score = p.extractEmail("没有邮箱的文本")
	assert.Empty(t, email)
	assert.Zero(t, score)
}

// TestExtractPhone 验证电话提取只压缩内部空白，不做E.164重排
func TestExtractPhone(t *testing.T) {
	p := NewStructuredCVParser()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"国际区号", "Phone: +1 555 123 4567", "+1 555 123 4567"},
		{"括号区号", "Tel: (555) 123-4567", "(555) 123-4567"},
		{"点分隔", "555.123.4567", "555.123.4567"},
		{"制表符压缩为单个空格", "+1\t555 123 4567", "+1 555 123 4567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, score := p.extractPhone(tt.text)
			assert.Equal(t, tt.want, phone)
			assert.Equal(t, ScorePhone, score)
		})
	}

	phone, score := p.extractPhone("no digits here")
	assert.Empty(t, phone)
	assert.Zero(t, score)
}

// TestExtractLocation 验证开头20行内"City, Region"形状的地点识别
func TestExtractLocation(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Jane Doe",
		"jane@example.com",
		"San Francisco, CA",
	}
	assert.Equal(t, "San Francisco, CA", p.extractLocation(lines))

	// 含"@"的行即使形状匹配也要跳过
	lines = []string{"Jane, CA @home"}
	assert.Empty(t, p.extractLocation(lines))

	// 超过50字符的候选被跳过
	long := "San Francisco Bay Area Metropolitan Region, California United States"
	assert.Empty(t, p.extractLocation([]string{long}))

	// 超出扫描范围的地点不被采纳
	far := make([]string, 25)
	far[22] = "Austin, Texas"
	assert.Empty(t, p.extractLocation(far))
}

// TestExtractLinks 验证链接提取用捕获的handle重建短链
func TestExtractLinks(t *testing.T) {
	p := NewStructuredCVParser()

	text := "https://www.linkedin.com/in/jane-doe-123 | https://github.com/janedoe"
	linkedin, github, score := p.extractLinks(text)
	assert.Equal(t, "linkedin.com/in/jane-doe-123", linkedin)
	assert.Equal(t, "github.com/janedoe", github)
	assert.Equal(t, ScoreLinkedIn+ScoreGitHub, score)

	// 只有其中一个时得分只加一项
	linkedin, github, score = p.extractLinks("github.com/solo-dev")
	assert.Empty(t, linkedin)
	assert.Equal(t, "github.com/solo-dev", github)
	assert.Equal(t, ScoreGitHub, score)
}

// TestExtractNameAndSummary 验证姓名行识别和紧随其后的概要采纳
func TestExtractNameAndSummary(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Jane Marie Doe",
		"",
		"Senior Software Engineer with 8 years of experience",
		"jane@example.com",
	}
	first, last, summary, score := p.extractNameAndSummary(lines)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Marie Doe", last)
	assert.Equal(t, "Senior Software Engineer with 8 years of experience", summary)
	assert.Equal(t, ScoreName, score)

	// 下一非空行含"@"时不采纳为概要
	lines = []string{"Jane Doe", "jane@example.com"}
	_, _, summary, _ = p.extractNameAndSummary(lines)
	assert.Empty(t, summary)

	// 全小写的行不是姓名行
	first, last, _, score = p.extractNameAndSummary([]string{"jane doe"})
	assert.Empty(t, first)
	assert.Empty(t, last)
	assert.Zero(t, score)
}
