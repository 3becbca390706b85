package handler

import (
	"net/http"
	"strconv"
	"time"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type PostCreateReq struct {
	CommunityID uint64 `json:"community_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Content     string `json:"content" binding:"max=50000"`
}

type PostUpdateReq struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"max=50000"`
}

type PostDTO struct {
	ID          uint64 `json:"id"`
	CommunityID uint64 `json:"community_id"`
	AuthorID    uint64 `json:"author_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Score       int64  `json:"score"`
	CreatedAt   string `json:"created_at"`
}

func postDTO(p model.Post) PostDTO {
	return PostDTO{
		ID:          p.ID,
		CommunityID: p.CommunityID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Content:     p.Content,
		Score:       p.Score,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.Create(c.Request.Context(), middleware.UserIDFrom(c), req.CommunityID, req.Title, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, postDTO(*post))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, postDTO(*post))
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PostUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.Update(c.Request.Context(), middleware.ClaimsFrom(c), id, req.Title, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, postDTO(*post))
}

func (h *PostHandler) Delete(c *gin.Context) {
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

func (h *PostHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	communityID, _ := strconv.ParseUint(c.Query("community"), 10, 64)
	authorID, _ := strconv.ParseUint(c.Query("author"), 10, 64)
	filter := mysql.PostFilter{
		CommunityID: communityID,
		AuthorID:    authorID,
		Search:      c.Query("search"),
	}
	list, count, err := h.svc.List(filter, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]PostDTO, 0, len(list))
	for _, p := range list {
		dtos = append(dtos, postDTO(p))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}
