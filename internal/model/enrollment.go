package model

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentID 拼接确定性主键 "<userId>_<courseId>"，
// 使"是否已选课"成为一次主键点查而不是条件查询。
func EnrollmentID(userID, courseID string) string {
	return userID + "_" + courseID
}

// swagger:model Enrollment
// 一条选课记录：一个学习者与一门课程的关系。
// CompletedChapters 语义上是集合，存储与传输时为有序数组，不允许重复。
type Enrollment struct {
	ID                string    `gorm:"primaryKey;type:varchar(100)" json:"id"`
	UserID            string    `gorm:"size:36;index;not null" json:"userId"`
	CourseID          string    `gorm:"size:36;not null" json:"courseId"`
	EnrolledAt        time.Time `json:"enrolledAt"`
	CompletedChapters []string  `gorm:"serializer:json" json:"completedChapters"`
	Progress          int       `gorm:"default:0" json:"progress"`
	LastAccessedAt    time.Time `json:"lastAccessedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// AfterFind 读取时去重，防御存储层中可能存在的脏数据；
// 同时保证空集合序列化为 [] 而不是 null。
func (e *Enrollment) AfterFind(tx *gorm.DB) error {
	e.CompletedChapters = dedupChapters(e.CompletedChapters)
	return nil
}

// HasChapter 判断章节是否已标记完成
func (e *Enrollment) HasChapter(chapterID string) bool {
	for _, id := range e.CompletedChapters {
		if id == chapterID {
			return true
		}
	}
	return false
}

// SetChapter 幂等地标记/取消标记章节完成，返回集合是否发生变化
func (e *Enrollment) SetChapter(chapterID string, completed bool) bool {
	if completed {
		if e.HasChapter(chapterID) {
			return false
		}
		e.CompletedChapters = append(e.CompletedChapters, chapterID)
		return true
	}

	for i, id := range e.CompletedChapters {
		if id == chapterID {
			e.CompletedChapters = append(e.CompletedChapters[:i], e.CompletedChapters[i+1:]...)
			return true
		}
	}
	return false
}

func dedupChapters(chapters []string) []string {
	seen := make(map[string]bool, len(chapters))
	result := make([]string, 0, len(chapters))
	for _, id := range chapters {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
