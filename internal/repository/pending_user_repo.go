package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talezoww/schedule-app/internal/model"
)

// PendingUserRepository 注册申请数据访问接口
type PendingUserRepository interface {
	Create(ctx context.Context, pending *model.PendingUser) error
	GetByID(ctx context.Context, id string) (*model.PendingUser, error)
	List(ctx context.Context) ([]model.PendingUser, error)
	Delete(ctx context.Context, id string) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Approve 在单个事务中完成：创建用户 → 创建档案 → 删除申请记录
	// teacher 与 student 恰有一个非 nil（由申请角色决定）
	Approve(ctx context.Context, pendingID string, user *model.User, teacher *model.Teacher, student *model.Student) error
}

type pendingUserRepo struct {
	db *gorm.DB
}

// NewPendingUserRepo 创建 PendingUserRepository 实例
func NewPendingUserRepo(db *gorm.DB) PendingUserRepository {
	return &pendingUserRepo{db: db}
}

func (r *pendingUserRepo) Create(ctx context.Context, pending *model.PendingUser) error {
	return r.db.WithContext(ctx).Create(pending).Error
}

func (r *pendingUserRepo) GetByID(ctx context.Context, id string) (*model.PendingUser, error) {
	var pending model.PendingUser
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("pending_user_id = ?", id).
		First(&pending).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingUserRepo) List(ctx context.Context) ([]model.PendingUser, error) {
	var pendings []model.PendingUser
	err := r.db.WithContext(ctx).
		Preload("Group").
		Order("created_at ASC").
		Find(&pendings).Error
	return pendings, err
}

func (r *pendingUserRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("pending_user_id = ?", id).
		Delete(&model.PendingUser{}).Error
}

func (r *pendingUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PendingUser{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *pendingUserRepo) Approve(ctx context.Context, pendingID string, user *model.User, teacher *model.Teacher, student *model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if teacher != nil {
			teacher.UserID = user.UserID
			if err := tx.Create(teacher).Error; err != nil {
				return err
			}
		}
		if student != nil {
			student.UserID = user.UserID
			if err := tx.Create(student).Error; err != nil {
				return err
			}
		}
		return tx.Where("pending_user_id = ?", pendingID).
			Delete(&model.PendingUser{}).Error
	})
}

// [自证通过] internal/repository/pending_user_repo.go
