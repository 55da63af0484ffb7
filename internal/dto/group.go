package dto

// ── 学生组模块 DTO ──

// CreateGroupRequest 创建组请求
type CreateGroupRequest struct {
	Name   string `json:"name"   binding:"required,min=2,max=50"`
	Course int    `json:"course" binding:"required,min=1,max=6"`
}

// UpdateGroupRequest 更新组请求
type UpdateGroupRequest struct {
	Name   *string `json:"name"   binding:"omitempty,min=2,max=50"`
	Course *int    `json:"course" binding:"omitempty,min=1,max=6"`
}

// GroupBrief 组简要信息（嵌入其他响应）
type GroupBrief struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Course int    `json:"course"`
}

// GroupResponse 组信息响应
type GroupResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Course       int    `json:"course"`
	StudentCount int64  `json:"student_count"`
	CreatedAt    string `json:"created_at"`
}
