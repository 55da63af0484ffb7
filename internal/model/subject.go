package model

// Subject 学科表 — 对应 subjects
type Subject struct {
	SubjectID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name        string  `gorm:"type:varchar(200);not null"                     json:"name"`
	Code        string  `gorm:"type:varchar(20);not null;unique"               json:"code"`
	Description string  `gorm:"type:text"                                      json:"description,omitempty"`
	Hours       int     `gorm:"not null;default:0"                             json:"hours"`
	TeacherID   *string `gorm:"type:uuid"                                      json:"teacher_id,omitempty"` // 可选的负责教师
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// [自证通过] internal/model/subject.go
