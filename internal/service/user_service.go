package service

import (
	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
	"aivra_backend/internal/util"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateProfile 幂等创建用户档案：已存在时原样返回，不覆盖
func (s *UserService) CreateProfile(id, email, firstName, lastName string) (*model.User, bool, error) {
	existing, err := s.UserRepo.FindByID(id)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := &model.User{
		Email:                email,
		FirstName:            firstName,
		LastName:             lastName,
		DisplayName:          strings.TrimSpace(firstName + " " + lastName),
		Role:                 model.Student,
		IsOnboardingComplete: false,
	}
	user.ID = id

	if err := s.UserRepo.Create(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

type ProfileUpdate struct {
	DisplayName string
	Role        model.UserRole
	Bio         string
}

// UpdateProfile 合并式更新档案并标记完成引导流程
func (s *UserService) UpdateProfile(userID string, update ProfileUpdate) (*model.User, error) {
	role := update.Role
	if role == "" {
		role = model.Student
	}

	fields := map[string]interface{}{
		"display_name":           update.DisplayName,
		"role":                   role,
		"bio":                    update.Bio,
		"is_onboarding_complete": true,
		"updated_at":             time.Now(),
	}

	if err := s.UserRepo.UpdateFields(userID, fields); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// Promote 角色提升（测试路由使用）
func (s *UserService) Promote(userID string, role model.UserRole) error {
	return s.UserRepo.UpdateRole(userID, role)
}
