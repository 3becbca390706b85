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

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type JoinReq struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type SessionDTO struct {
	ID        string `json:"id"`
	UserAgent string `json:"user_agent"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
	Active    bool   `json:"active"`
}

func (h *AuthHandler) join(c *gin.Context, role int) {
	var req JoinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	actor := middleware.ClaimsFrom(c)
	user, err := h.svc.Join(c.Request.Context(), req.Username, req.Email, req.Password, role, actor)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

func (h *AuthHandler) login(c *gin.Context, role int) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	pair, session, err := h.svc.Login(c.Request.Context(), req.Login, req.Password, c.Request.UserAgent(), role)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"session_id":    session.ID,
	})
}

func (h *AuthHandler) MemberJoin(c *gin.Context)  { h.join(c, model.RoleMember) }
func (h *AuthHandler) MemberLogin(c *gin.Context) { h.login(c, model.RoleMember) }
func (h *AuthHandler) AdminJoin(c *gin.Context)   { h.join(c, model.RoleAdmin) }
func (h *AuthHandler) AdminLogin(c *gin.Context)  { h.login(c, model.RoleAdmin) }

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	pair, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.UserIDFrom(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.ChangePassword(middleware.UserIDFrom(c), req.OldPassword, req.NewPassword); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password changed"})
}

func (h *AuthHandler) ListSessions(c *gin.Context) {
	page, limit := pageParams(c)
	list, count, err := h.svc.ListSessions(middleware.UserIDFrom(c), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	dtos := make([]SessionDTO, 0, len(list))
	for _, s := range list {
		dtos = append(dtos, sessionDTO(s))
	}
	c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
}

func (h *AuthHandler) RevokeSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid session id"})
		return
	}
	if err := h.svc.RevokeSession(middleware.ClaimsFrom(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "revoked"})
}

func sessionDTO(s model.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
		Active:    s.Active(time.Now()),
	}
}
