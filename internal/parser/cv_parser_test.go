package parser

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Senior Software Engineer
San Francisco, CA
jane.doe@example.com | +1 555 123 4567
linkedin.com/in/janedoe | github.com/janedoe

Summary
Engineer with eight years of backend experience.

Experience

Acme Corp
Senior Developer
Jan 2020 - Present
• Led migration of the billing stack to Kubernetes
• Reduced p99 latency by forty percent

Globex Inc
Backend Engineer
2017 - 2019
• Maintained payment reconciliation services

Education

Bachelor of Science in Computer Science
State University
2013 - 2017

Skills
Go, Docker, PostgreSQL
Team leadership
`

// TestParseFullResume 对一份典型纯文本简历做端到端解析
func TestParseFullResume(t *testing.T) {
	p := NewStructuredCVParser()

	data, confidence := p.Parse(sampleResume)
	require.NotNil(t, data)

	// 联系信息
	assert.Equal(t, "Jane", data.PersonalInfo.FirstName)
	assert.Equal(t, "Doe", data.PersonalInfo.LastName)
	assert.Equal(t, "jane.doe@example.com", data.PersonalInfo.Email)
	assert.Equal(t, "+1 555 123 4567", data.PersonalInfo.Phone)
	assert.Equal(t, "San Francisco, CA", data.PersonalInfo.Location)
	assert.Equal(t, "linkedin.com/in/janedoe", data.PersonalInfo.LinkedIn)
	assert.Equal(t, "github.com/janedoe", data.PersonalInfo.GitHub)
	// Summary 章节覆盖开头的头衔行
	assert.Equal(t, "Engineer with eight years of backend experience.", data.PersonalInfo.Summary)

	// 工作经历
	require.Len(t, data.WorkExperience, 2)
	assert.Equal(t, "Acme Corp", data.WorkExperience[0].Company)
	assert.Equal(t, "Senior Developer", data.WorkExperience[0].Position)
	assert.True(t, data.WorkExperience[0].Current)
	assert.Len(t, data.WorkExperience[0].Description, 2)
	assert.Equal(t, "Globex Inc", data.WorkExperience[1].Company)
	assert.Equal(t, "2017 - 2019", data.WorkExperience[1].StartDate)

	// 教育
	require.Len(t, data.Education, 1)
	assert.Equal(t, "State University", data.Education[0].Institution)
	assert.Contains(t, data.Education[0].Degree, "Bachelor of Science")

	// 技能
	names := make([]string, 0, len(data.Skills))
	for _, s := range data.Skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Go")
	assert.Contains(t, names, "Docker")
	assert.Contains(t, names, "PostgreSQL")
	assert.Contains(t, names, "Team leadership")

	// 全部信号命中：15+10+20+5+5+20+15+15 = 105，截断到100
	assert.Equal(t, 100, confidence)
}

// TestParseEmptyText 空文本返回全空结构和置信分0，不报错
func TestParseEmptyText(t *testing.T) {
	p := NewStructuredCVParser()

	for _, text := range []string{"", "   ", "\n\t\n"} {
		data, confidence := p.Parse(text)
		require.NotNil(t, data)
		assert.Zero(t, confidence)
		assert.Empty(t, data.PersonalInfo.Email)
		assert.NotNil(t, data.WorkExperience)
		assert.Empty(t, data.WorkExperience)
		assert.NotNil(t, data.Skills)
		assert.Empty(t, data.Skills)
	}
}

// TestParseUnstructuredText 没有任何章节标题时只有联系信息被提取
func TestParseUnstructuredText(t *testing.T) {
	p := NewStructuredCVParser()

	text := "Jane Doe\nReach me at jane@example.com any time."
	data, confidence := p.Parse(text)

	assert.Equal(t, "jane@example.com", data.PersonalInfo.Email)
	assert.Empty(t, data.WorkExperience)
	assert.Empty(t, data.Education)
	assert.Empty(t, data.Skills)
	assert.Equal(t, ScoreName+ScoreEmail, confidence)
}

// TestParseCRLFNormalization Windows换行的文本解析结果与Unix一致
func TestParseCRLFNormalization(t *testing.T) {
	p := NewStructuredCVParser()

	unix, cu := p.Parse(sampleResume)
	dos, cd := p.Parse(strings.ReplaceAll(sampleResume, "\n", "\r\n"))

	assert.Equal(t, cu, cd)
	assert.Equal(t, unix.PersonalInfo, dos.PersonalInfo)
	assert.Equal(t, len(unix.WorkExperience), len(dos.WorkExperience))
}

// TestParseWithNilLoggerOption 传入nil logger时保留静默默认值，解析不会崩溃
// 生产环境非debug级别下logger选项就是nil，这条路径必须安全
func TestParseWithNilLoggerOption(t *testing.T) {
	var nilLogger *log.Logger
	p := NewStructuredCVParser(WithParserLogger(nilLogger))

	data, confidence := p.Parse("John Smith\njohn.smith@example.com\n+1 555 123 4567")
	require.NotNil(t, data)
	assert.Equal(t, "John", data.PersonalInfo.FirstName)
	assert.Equal(t, ScoreName+ScoreEmail+ScorePhone, confidence)
}

// TestParseConcurrentCalls 解析器无共享可变状态，可并发复用
func TestParseConcurrentCalls(t *testing.T) {
	p := NewStructuredCVParser(WithParserLogger(log.New(io.Discard, "", 0)))

	done := make(chan int, 8)
	for g := 0; g < 8; g++ {
		go func() {
			_, confidence := p.Parse(sampleResume)
			done <- confidence
		}()
	}
	for g := 0; g < 8; g++ {
		assert.Equal(t, 100, <-done)
	}
}

// TestClampConfidence 验证置信分截断到[0,100]
func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, ClampConfidence(-5))
	assert.Equal(t, 0, ClampConfidence(0))
	assert.Equal(t, 42, ClampConfidence(42))
	assert.Equal(t, 100, ClampConfidence(100))
	assert.Equal(t, 100, ClampConfidence(105))
}
