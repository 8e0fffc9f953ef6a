package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/products"
)

// GET /api/products/:id
// Signed-in visitors also get their wishlist state for the product.
func (h *CatalogHandler) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var token string
	if s := middleware.CurrentSession(c); s.IsAuthenticated() {
		token = s.Token
	}
	res, err := h.Svc.Detail(c.Request.Context(), id, token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// GET /api/products/:id/reviews
func (h *CatalogHandler) Reviews(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, avg, err := h.Svc.Reviews(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "avg_rating": avg})
}

type reviewInput struct {
	ProductID int64  `json:"product_id" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment" binding:"required,max=1000"`
}

// POST /api/reviews
func (h *CatalogHandler) AddReview(c *gin.Context) {
	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	r, err := h.Svc.AddReview(c.Request.Context(), sess(c).Token, products.ReviewInput{
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": products.MsgReviewSent, "review": r})
}

// GET /api/wishlist
func (h *CatalogHandler) Wishlist(c *gin.Context) {
	items, err := h.Svc.Wishlist(c.Request.Context(), sess(c).Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// POST /api/wishlist/:id/toggle
func (h *CatalogHandler) ToggleWishlist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	on, err := h.Svc.ToggleWishlist(c.Request.Context(), sess(c).Token, id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	msg := "Đã xóa khỏi danh sách yêu thích."
	if on {
		msg = "Đã thêm vào danh sách yêu thích."
	}
	c.JSON(http.StatusOK, gin.H{"in_wishlist": on, "message": msg})
}
