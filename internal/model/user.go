package model

import (
	"time"
)

type UserRole string

const (
	Student   UserRole = "student"
	Professor UserRole = "professor"
	Admin     UserRole = "admin"
)

// roleGrants 角色权限偏序：key 角色隐含 value 中所有角色的权限。
// 管理员覆盖教授权限；教授不覆盖学生（本系统没有仅学生可用的路由）。
var roleGrants = map[UserRole][]UserRole{
	Admin:     {Admin, Professor},
	Professor: {Professor},
	Student:   {Student},
}

// RoleAllows 判断 have 角色是否满足 want 角色的要求
func RoleAllows(have, want UserRole) bool {
	for _, granted := range roleGrants[have] {
		if granted == want {
			return true
		}
	}
	return false
}

// swagger:model User
type User struct {
	UUIDBase
	Email                string    `gorm:"size:100;unique;not null" json:"email"`
	Password             string    `gorm:"size:100;not null" json:"-"`
	FirstName            string    `gorm:"size:100" json:"firstName"`
	LastName             string    `gorm:"size:100" json:"lastName"`
	DisplayName          string    `gorm:"size:200" json:"displayName"`
	Bio                  string    `gorm:"type:text" json:"bio"`
	Role                 UserRole  `gorm:"size:20;default:'student'" json:"role"`
	IsOnboardingComplete bool      `gorm:"default:false" json:"isOnboardingComplete"`
	LastLogin            time.Time `gorm:"autoCreateTime" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
