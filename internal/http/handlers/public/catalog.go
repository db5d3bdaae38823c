package public

import (
	"errors"
	"strconv"

	"github.com/kalakriti-next/internal/http/response"
	"github.com/kalakriti-next/internal/repository"
	"github.com/kalakriti-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListArtworks 获取上架艺术品列表
func (h *Handler) ListArtworks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	artworks, total, err := h.CatalogService.List(repository.ArtworkListFilter{
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, response.CodeInternal, "作品列表查询失败")
		return
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, artworks, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetArtwork 按 slug 获取艺术品详情
func (h *Handler) GetArtwork(c *gin.Context) {
	artwork, err := h.CatalogService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "作品不存在或已下架")
			return
		}
		response.Error(c, response.CodeInternal, "作品查询失败")
		return
	}
	response.Success(c, artwork)
}
