package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// RegisterRequest 注册申请请求
// 注册后进入待审批队列，管理员批准后才能登录
type RegisterRequest struct {
	Username      string `json:"username"       binding:"required,min=3,max=80"`
	Email         string `json:"email"          binding:"required,email,max=120"`
	Password      string `json:"password"       binding:"required,min=6,max=72"`
	FirstName     string `json:"first_name"     binding:"required,max=100"`
	LastName      string `json:"last_name"      binding:"required,max=100"`
	Phone         string `json:"phone"          binding:"omitempty,max=20"`
	RequestedRole string `json:"requested_role" binding:"required,oneof=teacher student"`

	// 学生字段
	GroupID        *string `json:"group_id"        binding:"omitempty,uuid"`
	StudentNumber  string  `json:"student_number"  binding:"omitempty,max=20"`
	EnrollmentYear *int    `json:"enrollment_year" binding:"omitempty,min=2000,max=2100"`

	// 教师字段
	Department string `json:"department" binding:"omitempty,max=200"`
	Position   string `json:"position"   binding:"omitempty,max=100"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// TokenResponse 登录/刷新成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RegisterResponse 注册申请响应
type RegisterResponse struct {
	PendingUserID string `json:"pending_user_id"`
	Status        string `json:"status"` // 固定为 pending
}
