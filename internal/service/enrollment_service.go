package service

import (
	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
	"aivra_backend/internal/util"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

// EnrollmentService 负责选课记录的生命周期：
// 每个 (user, course) 对恰好一条记录，首次读取时自动创建，
// 章节完成标记幂等可重复。
type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{EnrollmentRepo: enrollmentRepo}
}

// GetOrCreateEnrollment 首次访问即选课。
// 记录不存在时创建（唯一创建路径，没有独立的"选课"动作）；
// 已存在时刷新 lastAccessedAt 后原样返回 —— 读操作带副作用，
// 因此方法名明确标注 GetOrCreate。
func (s *EnrollmentService) GetOrCreateEnrollment(userID, courseID string) (*model.Enrollment, error) {
	id := model.EnrollmentID(userID, courseID)

	enrollment, err := s.EnrollmentRepo.FindByID(id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		now := time.Now()
		enrollment = &model.Enrollment{
			ID:                id,
			UserID:            userID,
			CourseID:          courseID,
			EnrolledAt:        now,
			CompletedChapters: []string{},
			Progress:          0,
			LastAccessedAt:    now,
		}
		if err := s.EnrollmentRepo.Create(enrollment); err != nil {
			return nil, err
		}
		return enrollment, nil
	}

	now := time.Now()
	if err := s.EnrollmentRepo.Touch(id, now); err != nil {
		return nil, err
	}
	enrollment.LastAccessedAt = now
	return enrollment, nil
}

// ListEnrollments 返回用户的全部选课记录，无分页
func (s *EnrollmentService) ListEnrollments(userID string) ([]model.Enrollment, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return enrollments, nil
}

// SetChapterCompletion 幂等地标记/取消标记章节完成，返回更新后的集合。
// 与 GetOrCreateEnrollment 不对称：记录不存在时不自动创建，
// 直接返回 ErrEnrollmentNotFound（调用方必须先读过一次）。
// 不校验 chapterID 是否属于课程，也不重算存储的 progress 字段。
// 读-改-写之间没有 CAS，两个并发调用后写者覆盖前写者。
func (s *EnrollmentService) SetChapterCompletion(userID, courseID, chapterID string, isCompleted bool) ([]string, error) {
	id := model.EnrollmentID(userID, courseID)

	enrollment, err := s.EnrollmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	enrollment.SetChapter(chapterID, isCompleted)

	if err := s.EnrollmentRepo.UpdateCompletedChapters(id, enrollment.CompletedChapters, time.Now()); err != nil {
		return nil, err
	}
	return enrollment.CompletedChapters, nil
}

// DeriveProgressPercent 按需推导完成百分比（四舍五入），不落库。
// 与存储的 progress 字段是两回事，两者可以不一致。
func DeriveProgressPercent(completedChapters []string, modules []model.Module) int {
	total := model.CountChapters(modules)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(completedChapters)) * 100 / float64(total)))
}
