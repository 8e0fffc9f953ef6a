package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/users"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/storage"
)

type profileInput struct {
	FullName string `form:"full_name" json:"full_name" binding:"max=100"`
	Phone    string `form:"phone" json:"phone" binding:"max=20"`
	Address  string `form:"address" json:"address" binding:"max=255"`
}

// PUT /api/profile accepts JSON or multipart; the multipart form may carry
// an "avatar" file.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageSize+1<<20)

	var in profileInput
	if err := c.ShouldBind(&in); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			middleware.Fail(c, storage.ErrTooLarge)
			return
		}
		middleware.Fail(c, validation.Error(err, &in))
		return
	}

	upd := users.ProfileInput{FullName: in.FullName, Phone: in.Phone, Address: in.Address}

	if fh, err := c.FormFile("avatar"); err == nil {
		f, err := fh.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		defer f.Close()
		upd.Avatar = &users.Avatar{
			Body:        f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
	}

	u, err := h.Profiles.Update(c.Request.Context(), sess(c), upd)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": users.MsgProfileSaved, "user": userView(u)})
}
