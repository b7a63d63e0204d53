package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/http/handlers/common"
	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/service"
)

// CatalogHandler — публичный каталог специалистов.
type CatalogHandler struct {
	browse     *service.BrowseService
	categories *service.CategoryService
}

// NewCatalogHandler создаёт хэндлер.
func NewCatalogHandler(browse *service.BrowseService, categories *service.CategoryService) *CatalogHandler {
	return &CatalogHandler{browse: browse, categories: categories}
}

// Browse обрабатывает GET /api/browse?q=&category=&location=.
func (h *CatalogHandler) Browse(c *gin.Context) {
	page, err := h.browse.Browse(c.Request.Context(), directory.Query{
		Text:     c.Query("q"),
		Category: c.Query("category"),
		Location: c.Query("location"),
	})
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// Categories обрабатывает GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	page, err := h.categories.Page(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// Professional обрабатывает GET /api/professionals/:id.
func (h *CatalogHandler) Professional(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.browse.Professional(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}
