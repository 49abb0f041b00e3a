package service

import (
	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
	"aivra_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

func (s *CourseService) ListCourses() ([]model.Course, error) {
	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (s *CourseService) GetCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// CreateCourse 创建课程并补全默认值
func (s *CourseService) CreateCourse(course *model.Course) error {
	if course.Duration.Unit == "" {
		course.Duration = model.Duration{Value: 0, Unit: "weeks"}
	}
	if course.Domain == "" {
		course.Domain = "General"
	}
	if course.Level == "" {
		course.Level = "Beginner"
	}
	if course.Status == "" {
		course.Status = model.CoursePublished
	}
	if course.Attachments == nil {
		course.Attachments = []model.Attachment{}
	}
	if course.Tags == nil {
		course.Tags = []string{}
	}
	if course.Modules == nil {
		course.Modules = []model.Module{}
	}

	return s.CourseRepo.Create(course)
}

// UpdateCourse 合并式更新，只写调用方给出的字段
func (s *CourseService) UpdateCourse(id string, fields map[string]interface{}) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.CourseRepo.UpdateFields(id, fields)
}

func (s *CourseService) DeleteCourse(id string) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.CourseRepo.Delete(id)
}
