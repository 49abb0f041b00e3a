package model

import (
	"encoding/json"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

// Duration 课程时长，如 {value: 6, unit: "weeks"}
type Duration struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// ChapterResource 章节附带的资料（PDF 或外部链接）
type ChapterResource struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // pdf | url
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ChapterContent 富文本编辑器产出的章节正文与资料列表
type ChapterContent struct {
	EditorData json.RawMessage   `json:"editorData"`
	Resources  []ChapterResource `json:"resources"`
}

type Chapter struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Content ChapterContent `json:"content"`
}

type Module struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Chapters    []Chapter `json:"chapters"`
}

// Attachment 课程级附件
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// swagger:model Course
// 课程按文档形状存储：modules/attachments/tags 等嵌套结构序列化为 JSON 列，
// 顶层字段保留为普通列以便按字段查询。
type Course struct {
	UUIDBase
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	InstructorID string       `gorm:"size:36;index" json:"instructorId"`
	Duration     Duration     `gorm:"serializer:json" json:"duration"`
	Seats        int          `gorm:"default:0" json:"seats"`
	StartDate    string       `gorm:"size:30" json:"startDate"`
	Attachments  []Attachment `gorm:"serializer:json" json:"attachments"`
	Tags         []string     `gorm:"serializer:json" json:"tags"`
	Domain       string       `gorm:"size:100" json:"domain"`
	Level        string       `gorm:"size:50" json:"level"`
	Status       CourseStatus `gorm:"size:20;default:'published'" json:"status"`
	Modules      []Module     `gorm:"serializer:json" json:"modules"`
}

func (Course) TableName() string {
	return "courses"
}

// TotalChapters 展平所有模块后的章节总数
func (c *Course) TotalChapters() int {
	return CountChapters(c.Modules)
}

func CountChapters(modules []Module) int {
	total := 0
	for _, m := range modules {
		total += len(m.Chapters)
	}
	return total
}
