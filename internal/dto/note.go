package dto

// ── 学生笔记模块 DTO ──

// CreateNoteRequest 创建笔记请求
type CreateNoteRequest struct {
	LessonID string `json:"lesson_id" binding:"required,uuid"`
	Content  string `json:"content"   binding:"required"`
}

// UpdateNoteRequest 更新笔记请求
type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// NoteResponse 笔记响应
// LessonActive=false 表示所属课程已停用，前端据此降级展示
type NoteResponse struct {
	ID           string           `json:"id"`
	LessonID     string           `json:"lesson_id"`
	Content      string           `json:"content"`
	LessonActive bool             `json:"lesson_active"`
	Subject      *SubjectBrief    `json:"subject,omitempty"`
	LessonTime   *LessonTimeBrief `json:"lesson_time,omitempty"`
	LessonDate   string           `json:"lesson_date,omitempty"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}
