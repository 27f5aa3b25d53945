package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dreamspell/dreamspell/internal/usecase"
)

type User struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"column:password;type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (User) TableName() string { return "users" }

func (s *service) GetUserByName(ctx context.Context, name string) (usecase.User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.User{}, usecase.ErrNotFound
		}
		return usecase.User{}, err
	}

	return usecase.User{
		ID:        u.ID,
		Name:      u.Name,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
	}, nil
}
