package parser

// 各提取步骤的固定加分
// 权重直接相加，最终在 ClampConfidence 中截断到100
const (
	ScoreEmail      = 15
	ScorePhone      = 10
	ScoreName       = 20
	ScoreLinkedIn   = 5
	ScoreGitHub     = 5
	ScoreSkills     = 15 // 技能章节产出至少1条
	ScoreExperience = 20 // 工作经历章节产出至少1条
	ScoreEducation  = 15 // 教育章节产出至少1条
)

// ClampConfidence 把累计得分截断到 [0, 100]
// 这是给UI的启发式信号（提示用户需要复核多少内容），不是统计意义上的概率
func ClampConfidence(sum int) int {
	if sum < 0 {
		return 0
	}
	if sum > 100 {
		return 100
	}
	return sum
}
