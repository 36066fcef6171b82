package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"articles-backend/internal/app"
	"articles-backend/internal/transport/http/response"
)

type ArticleEventHandler struct {
	eventService *app.ArticleEventService
}

func NewArticleEventHandler(eventService *app.ArticleEventService) *ArticleEventHandler {
	return &ArticleEventHandler{eventService: eventService}
}

func (h *ArticleEventHandler) List(c *gin.Context) {
	articleID, err := queryUint(c, "articleId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.BadRequest(c, "invalid limit "+strconv.Quote(raw))
			return
		}
	}

	var id uint
	if articleID != nil {
		id = *articleID
	}
	events, err := h.eventService.List(c.Request.Context(), id, limit)
	if err != nil {
		writeError(c, err, "list article events")
		return
	}
	response.OK(c, events)
}
