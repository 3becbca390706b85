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

// AdminHandler serves the admin-only surfaces: audit logs, configurations
// and search logs.
type AdminHandler struct {
	audit  *service.AuditService
	config *service.ConfigurationService
	search *service.SearchService
}

func NewAdminHandler(audit *service.AuditService, config *service.ConfigurationService, search *service.SearchService) *AdminHandler {
	return &AdminHandler{audit: audit, config: config, search: search}
}

type AuditLogDTO struct {
	ID         uint64 `json:"id"`
	ActorID    uint64 `json:"actor_id"`
	Action     string `json:"action"`
	TargetType string `json:"target_type"`
	TargetID   uint64 `json:"target_id"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"created_at"`
}

type ConfigurationReq struct {
	Key         string `json:"key" binding:"required,max=64"`
	Value       string `json:"value" binding:"max=500"`
	Description string `json:"description" binding:"max=255"`
}

type ConfigurationUpdateReq struct {
	Value       string `json:"value" binding:"max=500"`
	Description string `json:"description" binding:"max=255"`
}

type ConfigurationDTO struct {
	ID          uint64 `json:"id"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type SearchLogDTO struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	Query     string `json:"query"`
	Type      string `json:"type"`
	Results   int64  `json:"results"`
	CreatedAt string `json:"created_at"`
}

func configurationDTO(c model.Configuration) ConfigurationDTO {
	return ConfigurationDTO{ID: c.ID, Key: c.Key, Value: c.Value, Description: c.Description}
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	page, limit := pageParams(c)
	actorID, _ := strconv.ParseUint(c.Query("actor"), 10, 64)
	filter := mysql.AuditFilter{ActorID: actorID, Action: c.Query("action")}
	list, count, err := h.audit.List(filter, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]AuditLogDTO, 0, len(list))
	for _, entry := range list {
		dtos = append(dtos, AuditLogDTO{
			ID:         entry.ID,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			TargetType: entry.TargetType,
			TargetID:   entry.TargetID,
			Detail:     entry.Detail,
			CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *AdminHandler) CreateConfiguration(c *gin.Context) {
	var req ConfigurationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	cfg, err := h.config.Create(c.Request.Context(), middleware.UserIDFrom(c), req.Key, req.Value, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, configurationDTO(*cfg))
}

func (h *AdminHandler) GetConfiguration(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid key"})
		return
	}
	cfg, err := h.config.GetByKey(key)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, configurationDTO(*cfg))
}

func (h *AdminHandler) UpdateConfiguration(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ConfigurationUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	cfg, err := h.config.Update(c.Request.Context(), middleware.UserIDFrom(c), id, req.Value, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, configurationDTO(*cfg))
}

func (h *AdminHandler) DeleteConfiguration(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.config.Delete(c.Request.Context(), middleware.UserIDFrom(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *AdminHandler) ListConfigurations(c *gin.Context) {
	page, limit := pageParams(c)
	list, count, err := h.config.List(page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]ConfigurationDTO, 0, len(list))
	for _, cfg := range list {
		dtos = append(dtos, configurationDTO(cfg))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *AdminHandler) ListSearchLogs(c *gin.Context) {
	page, limit := pageParams(c)
	list, count, err := h.search.ListLogs(page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]SearchLogDTO, 0, len(list))
	for _, entry := range list {
		dtos = append(dtos, SearchLogDTO{
			ID:        entry.ID,
			UserID:    entry.UserID,
			Query:     entry.Query,
			Type:      entry.Type,
			Results:   entry.Results,
			CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}
