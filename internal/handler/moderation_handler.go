package handler

import (
	"net/http"
	"strconv"
	"time"

	"communityhub/internal/middleware"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	svc *service.ModerationService
}

func NewModerationHandler(svc *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

type ReportReq struct {
	TargetType string `json:"target_type" binding:"required,oneof=post comment"`
	TargetID   uint64 `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=500"`
}

type ResolveReq struct {
	Action string `json:"action" binding:"required,oneof=dismiss remove"`
}

type AppealReq struct {
	Statement string `json:"statement" binding:"required,max=1000"`
}

type AppealResolveReq struct {
	Accept *bool `json:"accept" binding:"required"`
}

type ReportDTO struct {
	ID         uint64 `json:"id"`
	ReporterID uint64 `json:"reporter_id"`
	TargetType string `json:"target_type"`
	TargetID   uint64 `json:"target_id"`
	Reason     string `json:"reason"`
	Status     int    `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type AppealDTO struct {
	ID        uint64 `json:"id"`
	ReportID  uint64 `json:"report_id"`
	AuthorID  uint64 `json:"author_id"`
	Statement string `json:"statement"`
	Status    int    `json:"status"`
	CreatedAt string `json:"created_at"`
}

func reportDTO(r model.Report) ReportDTO {
	return ReportDTO{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Reason:     r.Reason,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func appealDTO(a model.Appeal) AppealDTO {
	return AppealDTO{
		ID:        a.ID,
		ReportID:  a.ReportID,
		AuthorID:  a.AuthorID,
		Statement: a.Statement,
		Status:    a.Status,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *ModerationHandler) CreateReport(c *gin.Context) {
	var req ReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	report, err := h.svc.Report(c.Request.Context(), middleware.UserIDFrom(c), req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, reportDTO(*report))
}

func statusFilter(c *gin.Context) *int {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	status, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &status
}

func (h *ModerationHandler) ListReports(c *gin.Context) {
	page, limit := pageParams(c)
	list, count, err := h.svc.ListReports(statusFilter(c), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]ReportDTO, 0, len(list))
	for _, r := range list {
		dtos = append(dtos, reportDTO(r))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *ModerationHandler) GetReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	report, err := h.svc.GetReport(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reportDTO(*report))
}

func (h *ModerationHandler) ResolveReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ResolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	report, err := h.svc.Resolve(c.Request.Context(), middleware.UserIDFrom(c), id, req.Action)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reportDTO(*report))
}

func (h *ModerationHandler) CreateAppeal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AppealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	appeal, err := h.svc.Appeal(c.Request.Context(), middleware.UserIDFrom(c), id, req.Statement)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, appealDTO(*appeal))
}

func (h *ModerationHandler) ListAppeals(c *gin.Context) {
	page, limit := pageParams(c)
	list, count, err := h.svc.ListAppeals(statusFilter(c), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]AppealDTO, 0, len(list))
	for _, a := range list {
		dtos = append(dtos, appealDTO(a))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *ModerationHandler) ResolveAppeal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AppealResolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	appeal, err := h.svc.ResolveAppeal(c.Request.Context(), middleware.UserIDFrom(c), id, *req.Accept)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, appealDTO(*appeal))
}
