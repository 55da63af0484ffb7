package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role     string `form:"role"      binding:"omitempty,oneof=admin teacher student"`
	Page     int    `form:"page"      binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// UserDetailResponse 用户详情（含档案）
type UserDetailResponse struct {
	UserResponse
	Teacher *TeacherBrief `json:"teacher,omitempty"`
	Student *StudentBrief `json:"student,omitempty"`
}

// TeacherBrief 教师档案简要信息
type TeacherBrief struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name,omitempty"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	AcademicDegree string `json:"academic_degree,omitempty"`
	Office         string `json:"office,omitempty"`
}

// StudentBrief 学生档案简要信息
type StudentBrief struct {
	ID             string      `json:"id"`
	StudentNumber  string      `json:"student_number"`
	Group          *GroupBrief `json:"group,omitempty"`
	EnrollmentYear int         `json:"enrollment_year"`
}

// PendingUserResponse 注册申请响应
type PendingUserResponse struct {
	ID             string      `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Phone          string      `json:"phone,omitempty"`
	RequestedRole  string      `json:"requested_role"`
	Group          *GroupBrief `json:"group,omitempty"`
	StudentNumber  string      `json:"student_number,omitempty"`
	EnrollmentYear *int        `json:"enrollment_year,omitempty"`
	Department     string      `json:"department,omitempty"`
	Position       string      `json:"position,omitempty"`
	CreatedAt      string      `json:"created_at"`
}
