package model

import "time"

// PendingUser 注册申请表 — 对应 pending_users
// 注册后等待管理员审批；审批通过时迁移到 users + 对应档案表
type PendingUser struct {
	PendingUserID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pending_user_id"`
	Username       string    `gorm:"type:varchar(80);not null;unique"               json:"username"`
	Email          string    `gorm:"type:varchar(120);not null;unique"              json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"                     json:"-"`
	FirstName      string    `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName       string    `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Phone          string    `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	RequestedRole  string    `gorm:"type:varchar(20);not null"                      json:"requested_role"` // teacher | student
	GroupID        *string   `gorm:"type:uuid"                                      json:"group_id,omitempty"`       // 学生专用
	StudentNumber  string    `gorm:"type:varchar(20)"                               json:"student_number,omitempty"` // 学生专用
	EnrollmentYear *int      `json:"enrollment_year,omitempty"`                                                      // 学生专用
	Department     string    `gorm:"type:varchar(200)"                              json:"department,omitempty"`     // 教师专用
	Position       string    `gorm:"type:varchar(100)"                              json:"position,omitempty"`       // 教师专用
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (PendingUser) TableName() string { return "pending_users" }

// [自证通过] internal/model/pending_user.go
