package handler

import (
	"net/http"
	"strconv"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=2000"`
	CategoryID  uint64 `json:"category_id"`
}

type CommunityUpdateReq struct {
	Description string `json:"description" binding:"max=2000"`
	CategoryID  uint64 `json:"category_id"`
}

type RuleReq struct {
	Text string `json:"text" binding:"required,max=500"`
}

type CommunityDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  uint64 `json:"category_id"`
	CreatorID   uint64 `json:"creator_id"`
}

type RuleDTO struct {
	ID         uint64 `json:"id"`
	OrderIndex int    `json:"order_index"`
	Text       string `json:"text"`
}

type MemberDTO struct {
	UserID uint64 `json:"user_id"`
	Role   int    `json:"role"`
}

func communityDTO(cm model.Community) CommunityDTO {
	return CommunityDTO{
		ID:          cm.ID,
		Name:        cm.Name,
		Description: cm.Description,
		CategoryID:  cm.CategoryID,
		CreatorID:   cm.CreatorID,
	}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	community, err := h.svc.Create(c.Request.Context(), middleware.UserIDFrom(c), req.Name, req.Description, req.CategoryID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, communityDTO(*community))
}

func (h *CommunityHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	community, err := h.svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, communityDTO(*community))
}

func (h *CommunityHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CommunityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	community, err := h.svc.Update(c.Request.Context(), middleware.ClaimsFrom(c), id, req.Description, req.CategoryID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, communityDTO(*community))
}

func (h *CommunityHandler) Delete(c *gin.Context) {
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

func (h *CommunityHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 64)
	list, count, err := h.svc.List(c.Query("search"), categoryID, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]CommunityDTO, 0, len(list))
	for _, cm := range list {
		dtos = append(dtos, communityDTO(cm))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *CommunityHandler) Join(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Join(middleware.UserIDFrom(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Leave(middleware.UserIDFrom(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) ListMembers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, limit := pageParams(c)
	list, count, err := h.svc.ListMembers(id, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]MemberDTO, 0, len(list))
	for _, m := range list {
		dtos = append(dtos, MemberDTO{UserID: m.UserID, Role: m.Role})
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *CommunityHandler) ListRules(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rules, err := h.svc.ListRules(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]RuleDTO, 0, len(rules))
	for _, r := range rules {
		dtos = append(dtos, RuleDTO{ID: r.ID, OrderIndex: r.OrderIndex, Text: r.Text})
	}
	c.JSON(http.StatusOK, gin.H{"data": dtos})
}

func (h *CommunityHandler) AddRule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RuleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	rule, err := h.svc.AddRule(c.Request.Context(), middleware.ClaimsFrom(c), id, req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, RuleDTO{ID: rule.ID, OrderIndex: rule.OrderIndex, Text: rule.Text})
}

func (h *CommunityHandler) UpdateRule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ruleID, ok := paramID(c, "ruleID")
	if !ok {
		return
	}
	var req RuleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	rule, err := h.svc.UpdateRule(c.Request.Context(), middleware.ClaimsFrom(c), id, ruleID, req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, RuleDTO{ID: rule.ID, OrderIndex: rule.OrderIndex, Text: rule.Text})
}

func (h *CommunityHandler) DeleteRule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ruleID, ok := paramID(c, "ruleID")
	if !ok {
		return
	}
	if err := h.svc.DeleteRule(c.Request.Context(), middleware.ClaimsFrom(c), id, ruleID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
