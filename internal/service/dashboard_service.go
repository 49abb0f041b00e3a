package service

import (
	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
)

type DashboardService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
}

func NewDashboardService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *DashboardService {
	return &DashboardService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
	}
}

// EnrolledCourse 选课记录与课程元数据的组合视图，
// derivedProgress 为读取时即时推导的百分比（区别于存储的 progress 字段）
type EnrolledCourse struct {
	Enrollment      model.Enrollment `json:"enrollment"`
	CourseID        string           `json:"courseId"`
	CourseTitle     string           `json:"courseTitle"`
	CourseLevel     string           `json:"courseLevel"`
	TotalChapters   int              `json:"totalChapters"`
	DerivedProgress int              `json:"derivedProgress"`
}

// GetDashboard 汇总调用方的全部选课及即时进度。
// 选课与课程是两次独立读取，没有跨记录事务；
// 课程在选课之后被删除时该条目照常返回，章节总数按 0 计。
func (s *DashboardService) GetDashboard(userID string) ([]EnrolledCourse, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	courses, err := s.CourseRepo.FindByIDs(courseIDs)
	if err != nil {
		return nil, err
	}
	courseByID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	result := make([]EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		entry := EnrolledCourse{
			Enrollment: e,
			CourseID:   e.CourseID,
		}
		if course, ok := courseByID[e.CourseID]; ok {
			entry.CourseTitle = course.Title
			entry.CourseLevel = course.Level
			entry.TotalChapters = course.TotalChapters()
			entry.DerivedProgress = DeriveProgressPercent(e.CompletedChapters, course.Modules)
		}
		result = append(result, entry)
	}
	return result, nil
}
