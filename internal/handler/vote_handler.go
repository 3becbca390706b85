package handler

import (
	"net/http"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

type VoteReq struct {
	// -1 down, 0 clear, 1 up
	Value *int `json:"value" binding:"required"`
}

func (h *VoteHandler) cast(c *gin.Context, targetType string) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserIDFrom(c)
	if err := h.svc.Cast(ctx, userID, targetType, id, *req.Value); err != nil {
		respondErr(c, err)
		return
	}
	score, err := h.svc.Score(ctx, targetType, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score, "value": *req.Value})
}

func (h *VoteHandler) score(c *gin.Context, targetType string) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	score, err := h.svc.Score(c.Request.Context(), targetType, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := gin.H{"score": score}
	if userID := middleware.UserIDFrom(c); userID != 0 {
		if mine, err := h.svc.Mine(userID, targetType, id); err == nil {
			resp["value"] = mine
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoteHandler) CastPost(c *gin.Context)     { h.cast(c, model.TargetPost) }
func (h *VoteHandler) CastComment(c *gin.Context)  { h.cast(c, model.TargetComment) }
func (h *VoteHandler) ScorePost(c *gin.Context)    { h.score(c, model.TargetPost) }
func (h *VoteHandler) ScoreComment(c *gin.Context) { h.score(c, model.TargetComment) }
