package routes

import (
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

const maxUploadSize = 10 << 20

// UploadImage stores a single multipart file and returns its public path.
func UploadImage(ctx iris.Context) {
	ctx.SetMaxRequestBodySize(maxUploadSize)

	_, fileHeader, err := ctx.FormFile("file")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_upload", "file field is required")
		return
	}

	path, err := storage.SaveUpload(fileHeader)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"path": path})
}

// UploadImages stores several multipart files at once.
func UploadImages(ctx iris.Context) {
	ctx.SetMaxRequestBodySize(maxUploadSize * 5)

	files := ctx.Request().MultipartForm
	if files == nil {
		if err := ctx.Request().ParseMultipartForm(maxUploadSize * 5); err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, "invalid_upload", "multipart form required")
			return
		}
		files = ctx.Request().MultipartForm
	}

	headers := files.File["files"]
	if len(headers) == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_upload", "files field is required")
		return
	}

	paths := make([]string, 0, len(headers))
	for _, fh := range headers {
		path, err := storage.SaveUpload(fh)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		paths = append(paths, path)
	}
	ctx.JSON(iris.Map{"paths": paths})
}
