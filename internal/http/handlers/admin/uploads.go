package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/storage"
)

const msgFileRequired = "Vui lòng chọn tệp ảnh."

var uploadFolders = map[string]bool{"products": true, "banners": true, "categories": true}

type UploadsHandler struct {
	Storage storage.Storage
}

func NewUploadsHandler(st storage.Storage) *UploadsHandler {
	return &UploadsHandler{Storage: st}
}

// POST /api/admin/uploads?folder=products (multipart field "file")
// Answers the public URL to put in imageUrl.
func (h *UploadsHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageSize+1<<20)

	folder := c.DefaultQuery("folder", "products")
	if !uploadFolders[folder] {
		folder = "products"
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			middleware.Fail(c, storage.ErrTooLarge)
			return
		}
		middleware.Fail(c, apperr.InvalidErr(msgFileRequired, map[string]string{"file": msgFileRequired}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
		Folder:      folder,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		if _, ok := apperr.As(err); !ok {
			err = apperr.UnavailableErr("Không thể tải ảnh lên. Vui lòng thử lại.", err)
		}
		middleware.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	logging.FromCtx(ctx).InfoContext(ctx, "image_uploaded", slog.String("key", res.Key), slog.String("by", staff(c).Username()))
	c.JSON(http.StatusCreated, gin.H{"url": res.URL, "key": res.Key})
}
