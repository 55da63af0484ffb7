package dto

// ── 公开只读接口 DTO（机器可读课表） ──

// PublicScheduleRequest 按组+日期查询课表
type PublicScheduleRequest struct {
	Date string `form:"date" binding:"required"` // "2006-01-02"
}

// PublicLessonResponse 公开课表条目
type PublicLessonResponse struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	Teacher    string `json:"teacher"`
	LessonTime string `json:"lesson_time"` // "08:00 - 08:45"
	LessonType string `json:"lesson_type"`
	Classroom  string `json:"classroom"`
	Notes      string `json:"notes,omitempty"`
}

// PublicLessonTimeResponse 公开作息表条目
type PublicLessonTimeResponse struct {
	LessonNumber int    `json:"lesson_number"`
	HourNumber   int    `json:"hour_number"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}
