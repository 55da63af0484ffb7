package model

// Teacher 教师档案表 — 对应 teachers
type Teacher struct {
	TeacherID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	UserID         string `gorm:"type:uuid;not null;unique"                      json:"user_id"`
	Department     string `gorm:"type:varchar(200);not null"                     json:"department"`
	Position       string `gorm:"type:varchar(100);not null"                     json:"position"`
	AcademicDegree string `gorm:"type:varchar(100)"                              json:"academic_degree,omitempty"`
	Office         string `gorm:"type:varchar(50)"                               json:"office,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// [自证通过] internal/model/teacher.go
