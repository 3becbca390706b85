package handler

import (
	"net/http"
	"time"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CommentCreateReq struct {
	ParentID uint64 `json:"parent_id"`
	Content  string `json:"content" binding:"required,max=10000"`
}

type CommentUpdateReq struct {
	Content string `json:"content" binding:"required,max=10000"`
}

type CommentDTO struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	AuthorID  uint64 `json:"author_id"`
	ParentID  uint64 `json:"parent_id"`
	Content   string `json:"content"`
	Score     int64  `json:"score"`
	CreatedAt string `json:"created_at"`
}

func commentDTO(cm model.Comment) CommentDTO {
	return CommentDTO{
		ID:        cm.ID,
		PostID:    cm.PostID,
		AuthorID:  cm.AuthorID,
		ParentID:  cm.ParentID,
		Content:   cm.Content,
		Score:     cm.Score,
		CreatedAt: cm.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.svc.Create(c.Request.Context(), middleware.UserIDFrom(c), postID, req.ParentID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentDTO(*comment))
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, limit := pageParams(c)
	list, count, err := h.svc.ListByPost(postID, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]CommentDTO, 0, len(list))
	for _, cm := range list {
		dtos = append(dtos, commentDTO(cm))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	comment, err := h.svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, commentDTO(*comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CommentUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.svc.Update(c.Request.Context(), middleware.ClaimsFrom(c), id, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, commentDTO(*comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.ClaimsFrom(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
