package dto

// ── 学科模块 DTO ──

// CreateSubjectRequest 创建学科请求
type CreateSubjectRequest struct {
	Name        string  `json:"name"        binding:"required,min=2,max=200"`
	Code        string  `json:"code"        binding:"required,min=2,max=20"`
	Description string  `json:"description" binding:"omitempty"`
	Hours       int     `json:"hours"       binding:"omitempty,min=0,max=1000"`
	TeacherID   *string `json:"teacher_id"  binding:"omitempty,uuid"`
}

// UpdateSubjectRequest 更新学科请求
type UpdateSubjectRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=200"`
	Description *string `json:"description"`
	Hours       *int    `json:"hours"       binding:"omitempty,min=0,max=1000"`
	TeacherID   *string `json:"teacher_id"  binding:"omitempty,uuid"`
}

// SubjectBrief 学科简要信息（嵌入课程响应）
type SubjectBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// SubjectResponse 学科信息响应
type SubjectResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Code        string        `json:"code"`
	Description string        `json:"description,omitempty"`
	Hours       int           `json:"hours"`
	Teacher     *TeacherBrief `json:"teacher,omitempty"`
	CreatedAt   string        `json:"created_at"`
}
