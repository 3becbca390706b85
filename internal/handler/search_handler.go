package handler

import (
	"net/http"

	"communityhub/internal/middleware"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search dispatches on ?type= (posts by default) and logs every query.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "missing query"})
		return
	}
	page, limit := pageParams(c)
	userID := middleware.UserIDFrom(c)

	switch c.DefaultQuery("type", "posts") {
	case "posts":
		list, count, err := h.svc.SearchPosts(userID, query, page, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		dtos := make([]PostDTO, 0, len(list))
		for _, p := range list {
			dtos = append(dtos, postDTO(p))
		}
		c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
	case "communities":
		list, count, err := h.svc.SearchCommunities(userID, query, page, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		dtos := make([]CommunityDTO, 0, len(list))
		for _, cm := range list {
			dtos = append(dtos, communityDTO(cm))
		}
		c.JSON(http.StatusOK, pkg.NewPage(dtos, page, limit, count))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown search type"})
	}
}
