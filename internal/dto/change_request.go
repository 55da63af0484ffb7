package dto

// ── 调课申请模块 DTO ──

// CreateChangeRequestRequest 提交调课申请
type CreateChangeRequestRequest struct {
	LessonID    string `json:"lesson_id"    binding:"required,uuid"`
	RequestType string `json:"request_type" binding:"required,max=50"`
	OldValue    string `json:"old_value"    binding:"omitempty,max=200"`
	NewValue    string `json:"new_value"    binding:"required,max=200"`
	Reason      string `json:"reason"       binding:"required"`
}

// ProcessChangeRequestRequest 审批意见
// approve 时可选备注；reject 时备注必填（由 Service 校验）
type ProcessChangeRequestRequest struct {
	Comment string `json:"comment" binding:"omitempty"`
}

// ChangeRequestListRequest 申请列表查询参数
type ChangeRequestListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// ChangeRequestResponse 调课申请响应
type ChangeRequestResponse struct {
	ID           string          `json:"id"`
	Teacher      *TeacherBrief   `json:"teacher,omitempty"`
	Lesson       *LessonResponse `json:"lesson,omitempty"`
	RequestType  string          `json:"request_type"`
	OldValue     string          `json:"old_value,omitempty"`
	NewValue     string          `json:"new_value"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	AdminComment string          `json:"admin_comment,omitempty"`
	ProcessedAt  *string         `json:"processed_at,omitempty"`
	ProcessedBy  *string         `json:"processed_by,omitempty"`
	CreatedAt    string          `json:"created_at"`
}
