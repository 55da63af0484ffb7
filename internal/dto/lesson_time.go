package dto

// ── 作息表模块 DTO ──

// UpdateLessonTimeRequest 更新作息时间请求
type UpdateLessonTimeRequest struct {
	StartTime string `json:"start_time" binding:"required"` // "08:00"
	EndTime   string `json:"end_time"   binding:"required"` // "08:45"
}

// LessonTimeBrief 作息时间简要信息（嵌入课程响应）
type LessonTimeBrief struct {
	ID           string `json:"id"`
	LessonNumber int    `json:"lesson_number"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// LessonTimeResponse 作息时间响应
type LessonTimeResponse struct {
	ID           string `json:"id"`
	LessonNumber int    `json:"lesson_number"`
	HourNumber   int    `json:"hour_number"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}
