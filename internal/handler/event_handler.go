package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventLogic *logic.EventLogic
}

func NewEventHandler(eventLogic *logic.EventLogic) *EventHandler {
	return &EventHandler{eventLogic: eventLogic}
}

// GetEvents 获取事件列表，可按项目与事件类型过滤
func (h *EventHandler) GetEvents(c *gin.Context) {
	var projectId uint64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, "无效的项目ID")
			return
		}
		projectId = id
	}

	page, pageSize := pageParams(c)
	events, total, err := h.eventLogic.GetEvents(projectId, c.Query("event_type"), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取事件列表成功", EventListResponse{
		Events:     events,
		Pagination: newPagination(page, pageSize, total),
	})
}
