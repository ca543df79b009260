package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User 定义了用户模型，以邮箱作为唯一身份
type User struct {
	gorm.Model
	Email string `gorm:"size:255;uniqueIndex;not null"`
	Name  string
}

// ErrEmailRequired 在邮箱为空时返回
var ErrEmailRequired = errors.New("email is required")

// EnsureUser 按邮箱查找用户，不存在时创建；created 表示本次是否新建。
func EnsureUser(gdb *gorm.DB, email, name string) (user *User, created bool, err error) {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	if trimmedEmail == "" {
		return nil, false, ErrEmailRequired
	}
	if gdb == nil {
		return nil, false, errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}

		fresh := User{Email: trimmedEmail, Name: strings.TrimSpace(name)}
		if err := gdb.Create(&fresh).Error; err != nil {
			return nil, false, err
		}
		return &fresh, true, nil
	}

	return &existing, false, nil
}
