package parser

import (
	"testing"

	"cv-import-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocateSections 验证章节标题定位和窗口边界计算
func TestLocateSections(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Jane Doe",            // 0
		"",                    // 1
		"SUMMARY",             // 2
		"Engineer of things.", // 3
		"",                    // 4
		"Experience",          // 5
		"Acme Corp",           // 6
		"Senior Developer",    // 7
		"",                    // 8
		"Education",           // 9
		"State University",    // 10
	}

	windows := p.locateSections(lines)
	require.Len(t, windows, 3)

	sum := windows[types.KindSummary]
	assert.Equal(t, 2, sum.HeadingLine)
	assert.Equal(t, 3, sum.Start)
	assert.Equal(t, 5, sum.End) // 到下一个标题为止

	exp := windows[types.KindExperience]
	assert.Equal(t, 6, exp.Start)
	assert.Equal(t, 9, exp.End)

	edu := windows[types.KindEducation]
	assert.Equal(t, 10, edu.Start)
	assert.Equal(t, len(lines), edu.End) // 最后一个章节延伸到文档结尾
}

// TestLocateSectionsHeadingVariants 验证标题的同义词和大小写不敏感匹配
func TestLocateSectionsHeadingVariants(t *testing.T) {
	p := NewStructuredCVParser()

	tests := []struct {
		heading string
		kind    types.SectionKind
	}{
		{"Professional Summary", types.KindSummary},
		{"ABOUT ME", types.KindSummary},
		{"Technical Skills", types.KindSkills},
		{"work history", types.KindExperience},
		{"EMPLOYMENT", types.KindExperience},
		{"Academic Background", types.KindEducation},
	}
	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			windows := p.locateSections([]string{tt.heading, "content"})
			_, ok := windows[tt.kind]
			assert.True(t, ok)
		})
	}

	// 标题必须独占一行，混在句子里不算
	windows := p.locateSections([]string{"I have experience in Go"})
	assert.Empty(t, windows)
}

// TestLocateSectionsFirstOccurrenceWins 验证重复标题取首次出现
func TestLocateSectionsFirstOccurrenceWins(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Experience", // 0
		"First stint",
		"Experience", // 重复标题只是普通内容行
		"Second stint",
	}
	windows := p.locateSections(lines)
	require.Contains(t, windows, types.KindExperience)
	assert.Equal(t, 0, windows[types.KindExperience].HeadingLine)
	assert.Equal(t, len(lines), windows[types.KindExperience].End)
}

// TestLocateSectionsUnconventionalOrder 验证教育先于经历时窗口边界依然成立
func TestLocateSectionsUnconventionalOrder(t *testing.T) {
	p := NewStructuredCVParser()

	lines := []string{
		"Education",  // 0
		"University", // 1
		"Experience", // 2
		"Acme Corp",  // 3
	}
	windows := p.locateSections(lines)

	edu := windows[types.KindEducation]
	assert.Equal(t, 1, edu.Start)
	assert.Equal(t, 2, edu.End)

	exp := windows[types.KindExperience]
	assert.Equal(t, 3, exp.Start)
	assert.Equal(t, 4, exp.End)
}

// TestJoinWindowText 验证窗口文本拼接时跳过空行
func TestJoinWindowText(t *testing.T) {
	lines := []string{"head", "first", "", "second"}
	w := sectionWindow{Start: 1, End: 4}
	assert.Equal(t, "first second", joinWindowText(lines, w))
}
