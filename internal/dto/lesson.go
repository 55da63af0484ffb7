package dto

// ── 课程模块 DTO ──

// CreateLessonRequest 排课请求
// 星期几由日期推导，不由调用方提供
type CreateLessonRequest struct {
	SubjectID    string  `json:"subject_id"     binding:"required,uuid"`
	GroupID      string  `json:"group_id"       binding:"required,uuid"`
	TeacherID    *string `json:"teacher_id"     binding:"omitempty,uuid"` // 仅管理员可指定；教师默认为本人
	LessonTimeID string  `json:"lesson_time_id" binding:"required,uuid"`
	LessonType   string  `json:"lesson_type"    binding:"required,oneof=lecture practice lab seminar"`
	Classroom    string  `json:"classroom"      binding:"required,max=20"`
	Date         string  `json:"date"           binding:"required"` // "2006-01-02"
	Notes        string  `json:"notes"          binding:"omitempty"`
}

// UpdateLessonRequest 课程编辑请求
type UpdateLessonRequest struct {
	SubjectID    *string `json:"subject_id"     binding:"omitempty,uuid"`
	GroupID      *string `json:"group_id"       binding:"omitempty,uuid"`
	LessonTimeID *string `json:"lesson_time_id" binding:"omitempty,uuid"`
	LessonType   *string `json:"lesson_type"    binding:"omitempty,oneof=lecture practice lab seminar"`
	Classroom    *string `json:"classroom"      binding:"omitempty,max=20"`
	Date         *string `json:"date"`
	Notes        *string `json:"notes"`
}

// LessonListRequest 课程列表查询参数（教师工作台）
type LessonListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// LessonResponse 课程信息响应
type LessonResponse struct {
	ID         string           `json:"id"`
	Subject    *SubjectBrief    `json:"subject,omitempty"`
	Group      *GroupBrief      `json:"group,omitempty"`
	Teacher    *TeacherBrief    `json:"teacher,omitempty"`
	LessonTime *LessonTimeBrief `json:"lesson_time,omitempty"`
	Weekday    int              `json:"weekday"`
	LessonType string           `json:"lesson_type"`
	Classroom  string           `json:"classroom"`
	Date       string           `json:"date"` // "2006-01-02"
	IsActive   bool             `json:"is_active"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
}
