package repository

import (
	"aivra_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

// FindByID 主键点查，ID 为确定性组合键 "<userId>_<courseId>"
func (r *EnrollmentRepository) FindByID(id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment, "id = ?", id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUser(userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

// Touch 仅更新最后访问时间
func (r *EnrollmentRepository) Touch(id string, at time.Time) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", id).
		Update("last_accessed_at", at).
		Error
}

// UpdateCompletedChapters 整体覆写完成章节集合并刷新访问时间。
// 无 compare-and-swap：两个并发写之间后写者覆盖前写者（接受的弱点）。
func (r *EnrollmentRepository) UpdateCompletedChapters(id string, chapters []string, at time.Time) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed_chapters": chapters,
			"last_accessed_at":   at,
		}).Error
}
