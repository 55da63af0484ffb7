package dto

// ── 课表查询模块 DTO ──

// 查询粒度
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

// ScheduleRangeRequest 区间课表查询参数
// 可见范围由调用者角色决定：学生看本组，教师看本人课程，管理员看全部
type ScheduleRangeRequest struct {
	Date        string `form:"date"        binding:"required"` // 锚点日期 "2006-01-02"
	Granularity string `form:"granularity" binding:"required,oneof=day week month"`

	// 仅管理员可用的附加过滤
	GroupID   string `form:"group_id"   binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
}

// ScheduleRangeResponse 区间课表响应
type ScheduleRangeResponse struct {
	From        string           `json:"from"` // 区间起（含）
	To          string           `json:"to"`   // 区间止（含）
	Granularity string           `json:"granularity"`
	Lessons     []LessonResponse `json:"lessons"`
}
