package types

// SectionKind 表示简历章节类型
type SectionKind string

const (
	// KindSummary 个人简介章节
	KindSummary SectionKind = "SUMMARY"
	// KindSkills 技能章节
	KindSkills SectionKind = "SKILLS"
	// KindExperience 工作经历章节
	KindExperience SectionKind = "EXPERIENCE"
	// KindEducation 教育经历章节
	KindEducation SectionKind = "EDUCATION"
)

// PersonalInfo 从全文中抽取的联系人信息，未命中的字段保持空字符串
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Summary   string `json:"summary"`
}

// WorkExperienceEntry 从经历章节重建的一条工作记录
// ID 仅在单次导入调用内唯一，入库前由调用方重新映射
type WorkExperienceEntry struct {
	ID          int      `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"` // 原始日期字符串，不做ISO规范化
	Current     bool     `json:"current"`    // 根据 present/current 关键词推断
	Description []string `json:"description"`
}

// EducationEntry 从教育章节重建的一条学历记录
type EducationEntry struct {
	ID          int    `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"` // 自由文本，可能内联专业方向
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	Current     bool   `json:"current"`
}

// SkillEntry 技能条目，解析器无法推断熟练度，level 固定为 intermediate
type SkillEntry struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

// LanguageEntry 语言条目，解析器当前不填充，保留结构供调用方编辑
type LanguageEntry struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ResumeData 单次导入产出的部分结构化简历
// workExperience 与 education 保持原文出现顺序，不按时间排序
type ResumeData struct {
	PersonalInfo   PersonalInfo          `json:"personal_info"`
	WorkExperience []WorkExperienceEntry `json:"work_experience"`
	Education      []EducationEntry      `json:"education"`
	Skills         []SkillEntry          `json:"skills"`
	Languages      []LanguageEntry       `json:"languages"`
}

// NewResumeData 返回各切片均已初始化的空简历结构
// 保证序列化时输出 [] 而不是 null
func NewResumeData() *ResumeData {
	return &ResumeData{
		WorkExperience: []WorkExperienceEntry{},
		Education:      []EducationEntry{},
		Skills:         []SkillEntry{},
		Languages:      []LanguageEntry{},
	}
}

// ParsedCV 一次导入调用的输出信封，返回后不再修改
type ParsedCV struct {
	// Text 提取出的原始全文
	Text string `json:"text"`
	// Data 部分结构化简历，未识别的字段留空
	Data *ResumeData `json:"data"`
	// Confidence 启发式置信分，0-100，提示调用方需要人工复核的程度
	Confidence int `json:"confidence"`
}
