package router

import (
	"context"
	"errors"
	"strconv"

	"cv-import-go/internal/api/handler"
	"cv-import-go/internal/config"
	"cv-import-go/internal/parser"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, importHandler *handler.CVImportHandler) {
	api := h.Group("/api/v1")

	maxUploadBytes := int64(cfg.Importer.MaxUploadSizeMB) * 1024 * 1024

	api.POST("/cv/import", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		if maxUploadBytes > 0 && fileHeader.Size > maxUploadBytes {
			ctx.JSON(consts.StatusRequestEntityTooLarge, utils.H{
				"error": "文件超过大小上限",
				"limit": cfg.Importer.MaxUploadSizeMB,
			})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := importHandler.HandleCVImport(
			c,
			file,
			fileHeader.Filename,
			contentType,
		)
		if err != nil {
			var unsupportedErr *parser.UnsupportedFormatError
			if errors.As(err, &unsupportedErr) {
				ctx.JSON(consts.StatusUnsupportedMediaType, utils.H{
					"error":    unsupportedErr.Error(),
					"filename": unsupportedErr.Filename,
				})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/imports/:uuid", func(c context.Context, ctx *app.RequestContext) {
		importUUID := ctx.Param("uuid")
		if importUUID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "uuid不能为空"})
			return
		}

		resp, err := importHandler.HandleGetImportRecord(c, importUUID)
		if err != nil {
			if errors.Is(err, handler.ErrImportRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "导入记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/imports", func(c context.Context, ctx *app.RequestContext) {
		limit := 20
		if raw := ctx.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		resps, err := importHandler.HandleListRecentImports(c, limit)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, utils.H{"imports": resps, "count": len(resps)})
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
