package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cv-import-go/internal/config"
	"cv-import-go/internal/constants"
	"cv-import-go/internal/importer"
	"cv-import-go/internal/logger"
	"cv-import-go/internal/parser"
	"cv-import-go/internal/storage"
	"cv-import-go/internal/storage/models"
	"cv-import-go/internal/types"
	"cv-import-go/pkg/utils"

	"github.com/gofrs/uuid/v5"
	"gorm.io/gorm"
)

// DedupeStore 去重登记与记录缓存所需的键值存储能力
type DedupeStore interface {
	CheckAndSetFileMD5(ctx context.Context, md5Hex string, importUUID string) (bool, string, error)
	RemoveFileMD5(ctx context.Context, md5Hex string) error
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// ObjectStore 原始文件与提取文本的对象存储能力
type ObjectStore interface {
	UploadCVFile(ctx context.Context, importUUID, fileExt string, reader io.Reader, fileSize int64) (string, error)
	UploadRawText(ctx context.Context, importUUID string, text string) (string, error)
}

// ImportDatabase 导入记录的持久化能力
type ImportDatabase interface {
	CreateCVImport(ctx context.Context, record *models.CVImport, event *models.OutboxMessage) error
	GetCVImportByUUID(ctx context.Context, importUUID string) (*models.CVImport, error)
	ListRecentImports(ctx context.Context, limit int) ([]models.CVImport, error)
}

// CVImportHandler 简历导入处理器，负责协调导入的完整流程
// 依赖以窄接口注入，任一组件未配置时对应字段为nil并降级运行
type CVImportHandler struct {
	cfg      *config.Config
	redis    DedupeStore
	minio    ObjectStore
	db       ImportDatabase
	importer *importer.CVImporter
}

// NewCVImportHandler 从存储管理器装配导入处理器
func NewCVImportHandler(
	cfg *config.Config,
	st *storage.Storage,
	imp *importer.CVImporter,
) *CVImportHandler {
	h := &CVImportHandler{
		cfg:      cfg,
		importer: imp,
	}
	// 逐个判空再装入接口，nil具体指针装进接口后不再等于nil
	if st.Redis != nil {
		h.redis = st.Redis
	}
	if st.MinIO != nil {
		h.minio = st.MinIO
	}
	if st.MySQL != nil {
		h.db = st.MySQL
	}
	return h
}

// CVImportResponse 简历导入响应
type CVImportResponse struct {
	ImportUUID string            `json:"import_uuid"`
	Status     string            `json:"status"`
	Confidence int               `json:"confidence"`
	Data       *types.ResumeData `json:"data,omitempty"`
}

// ImportRecordResponse 导入记录查询响应
type ImportRecordResponse struct {
	ImportUUID       string          `json:"import_uuid"`
	OriginalFilename string          `json:"original_filename"`
	FileFormat       string          `json:"file_format"`
	Confidence       int             `json:"confidence"`
	ProcessingStatus string          `json:"processing_status"`
	ParserVersion    string          `json:"parser_version"`
	ImportedAt       time.Time       `json:"imported_at"`
	Data             json.RawMessage `json:"data,omitempty"`
}

// HandleCVImport 处理简历导入请求
// 流程: 去重检查 -> 提取并解析 -> 上传原始文件 -> 上传提取文本 -> 落库(含事件) -> 响应
func (h *CVImportHandler) HandleCVImport(ctx context.Context, reader io.Reader,
	filename string, contentType string) (*CVImportResponse, error) {

	// 0. 读取文件内容并计算MD5 (reader只能读一次)
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	fileMD5Hex := utils.CalculateMD5(fileBytes)

	// 1. 生成UUIDv7作为本次导入的标识
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	importUUID := uuidV7.String()

	// 2. 原子地检查并登记文件MD5，重复文件直接跳过
	if h.redis != nil {
		exists, existingUUID, err := h.redis.CheckAndSetFileMD5(ctx, fileMD5Hex, importUUID)
		if err != nil {
			// 去重是重要逻辑，Redis查询失败时选择报错而不是继续
			logger.Error().
				Err(err).
				Str("md5", fileMD5Hex).
				Msg("查询Redis文件MD5失败")
			return nil, fmt.Errorf("检查文件MD5重复性时Redis查询失败: %w", err)
		}
		if exists {
			logger.Info().
				Str("md5", fileMD5Hex).
				Str("filename", filename).
				Str("existing_uuid", existingUUID).
				Msg("检测到重复的文件MD5，跳过处理")
			return &CVImportResponse{
				ImportUUID: existingUUID,
				Status:     constants.StatusDuplicateSkipped,
			}, nil
		}
	}

	// 3. 提取文本并解析为结构化数据
	parsed, err := h.importer.ImportCV(ctx, bytes.NewReader(fileBytes), filename, contentType)
	if err != nil {
		// 导入失败时回滚MD5登记，同一文件允许重试
		h.rollbackFileMD5(ctx, fileMD5Hex)

		var unsupportedErr *parser.UnsupportedFormatError
		if errors.As(err, &unsupportedErr) {
			// 格式不支持属于客户端错误，保持类型信息原样返回
			return nil, err
		}

		// 提取失败也留痕，便于排查损坏文件
		if h.db != nil {
			failedRecord := &models.CVImport{
				ImportUUID:       importUUID,
				OriginalFilename: filename,
				ContentType:      contentType,
				FileSizeBytes:    int64(len(fileBytes)),
				FileMD5:          fileMD5Hex,
				ProcessingStatus: constants.StatusExtractionFailed,
				ParserVersion:    h.cfg.Importer.ParserVersion,
				ImportedAt:       time.Now(),
			}
			if dbErr := h.db.CreateCVImport(ctx, failedRecord, nil); dbErr != nil {
				logger.Warn().Err(dbErr).Str("import_uuid", importUUID).Msg("记录提取失败状态失败")
			}
		}
		return nil, err
	}

	format := parser.DetectFormat(filename, contentType)
	ext := utils.SafeFileExt(filename)
	if ext == "" {
		ext = ".pdf"
	}

	// 4. 上传原始文件到MinIO
	var originalObjectKey string
	if h.minio != nil {
		originalObjectKey, err = h.minio.UploadCVFile(ctx, importUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
		if err != nil {
			h.rollbackFileMD5(ctx, fileMD5Hex)
			return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
		}
	}

	// 5. 上传提取出的文本
	var rawTextObjectKey string
	if h.minio != nil && parsed.Text != "" {
		rawTextObjectKey, err = h.minio.UploadRawText(ctx, importUUID, parsed.Text)
		if err != nil {
			// 文本副本仅用于后续分析，上传失败不阻断导入
			logger.Warn().
				Err(err).
				Str("import_uuid", importUUID).
				Msg("上传提取文本到MinIO失败")
		}
	}

	// 6. 持久化导入记录，同事务写入导入完成事件
	if h.db != nil {
		if err := h.persistImportRecord(ctx, importUUID, filename, contentType, string(format),
			int64(len(fileBytes)), fileMD5Hex, originalObjectKey, rawTextObjectKey, parsed); err != nil {
			h.rollbackFileMD5(ctx, fileMD5Hex)
			return nil, err
		}
	}

	logger.Info().
		Str("import_uuid", importUUID).
		Str("filename", filename).
		Int("confidence", parsed.Confidence).
		Msg("简历导入完成")

	return &CVImportResponse{
		ImportUUID: importUUID,
		Status:     constants.StatusImported,
		Confidence: parsed.Confidence,
		Data:       parsed.Data,
	}, nil
}

// rollbackFileMD5 导入失败时撤销MD5登记
func (h *CVImportHandler) rollbackFileMD5(ctx context.Context, fileMD5Hex string) {
	if h.redis == nil {
		return
	}
	if err := h.redis.RemoveFileMD5(ctx, fileMD5Hex); err != nil {
		logger.Warn().
			Err(err).
			Str("md5", fileMD5Hex).
			Msg("回滚文件MD5登记失败")
	}
}

// persistImportRecord 写入导入记录和outbox事件
func (h *CVImportHandler) persistImportRecord(ctx context.Context, importUUID, filename, contentType, format string,
	fileSize int64, fileMD5Hex, originalObjectKey, rawTextObjectKey string, parsed *types.ParsedCV) error {

	parsedJSON, err := models.StructToJSON(parsed.Data)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}

	now := time.Now()
	record := &models.CVImport{
		ImportUUID:            importUUID,
		OriginalFilename:      filename,
		ContentType:           contentType,
		FileFormat:            format,
		FileSizeBytes:         fileSize,
		FileMD5:               fileMD5Hex,
		OriginalFileObjectKey: originalObjectKey,
		RawTextObjectKey:      rawTextObjectKey,
		RawTextMD5:            utils.CalculateMD5([]byte(parsed.Text)),
		ParsedDataJSON:        parsedJSON,
		Confidence:            parsed.Confidence,
		ProcessingStatus:      constants.StatusImported,
		ParserVersion:         h.cfg.Importer.ParserVersion,
		ImportedAt:            now,
	}

	event := storage.CVImportCompletedEvent{
		ImportUUID:            importUUID,
		ImportedAt:            now,
		OriginalFilename:      filename,
		FileFormat:            format,
		FileMD5:               fileMD5Hex,
		OriginalFileObjectKey: originalObjectKey,
		RawTextObjectKey:      rawTextObjectKey,
		Confidence:            parsed.Confidence,
		ProcessingStatus:      constants.StatusImported,
		ParserVersion:         h.cfg.Importer.ParserVersion,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化导入完成事件失败: %w", err)
	}

	outboxMsg := &models.OutboxMessage{
		AggregateID:      importUUID,
		EventType:        "cv.import.completed",
		Payload:          string(payload),
		TargetExchange:   h.cfg.RabbitMQ.ImportEventsExchange,
		TargetRoutingKey: h.cfg.RabbitMQ.CompletedRoutingKey,
		Status:           "PENDING",
	}
	// RabbitMQ未配置时不写事件，只落导入记录
	if h.cfg.RabbitMQ.URL == "" || h.cfg.RabbitMQ.ImportEventsExchange == "" {
		outboxMsg = nil
	}

	if err := h.db.CreateCVImport(ctx, record, outboxMsg); err != nil {
		return fmt.Errorf("持久化导入记录失败: %w", err)
	}
	return nil
}

// HandleGetImportRecord 按UUID查询导入记录，带Redis读缓存
func (h *CVImportHandler) HandleGetImportRecord(ctx context.Context, importUUID string) (*ImportRecordResponse, error) {
	cacheKey := fmt.Sprintf(constants.KeyImportRecordCache, importUUID)

	// 1. 先查缓存
	if h.redis != nil {
		cached, err := h.redis.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var resp ImportRecordResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			// 缓存内容损坏时回退到数据库
		} else if err != nil && err != storage.ErrNotFound {
			logger.Warn().Err(err).Str("import_uuid", importUUID).Msg("查询导入记录缓存失败")
		}
	}

	if h.db == nil {
		return nil, fmt.Errorf("数据库未配置，无法查询导入记录")
	}

	// 2. 查数据库
	record, err := h.db.GetCVImportByUUID(ctx, importUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportRecordNotFound
		}
		return nil, fmt.Errorf("查询导入记录失败: %w", err)
	}

	resp := &ImportRecordResponse{
		ImportUUID:       record.ImportUUID,
		OriginalFilename: record.OriginalFilename,
		FileFormat:       record.FileFormat,
		Confidence:       record.Confidence,
		ProcessingStatus: record.ProcessingStatus,
		ParserVersion:    record.ParserVersion,
		ImportedAt:       record.ImportedAt,
		Data:             json.RawMessage(record.ParsedDataJSON),
	}

	// 3. 回填缓存
	if h.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			ttl := time.Duration(constants.ImportRecordCacheTTLSeconds) * time.Second
			if err := h.redis.Set(ctx, cacheKey, string(data), ttl); err != nil {
				logger.Warn().Err(err).Str("import_uuid", importUUID).Msg("写入导入记录缓存失败")
			}
		}
	}

	return resp, nil
}

// HandleListRecentImports 列出最近的导入记录
func (h *CVImportHandler) HandleListRecentImports(ctx context.Context, limit int) ([]ImportRecordResponse, error) {
	if h.db == nil {
		return nil, fmt.Errorf("数据库未配置，无法查询导入记录")
	}

	records, err := h.db.ListRecentImports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("查询最近导入记录失败: %w", err)
	}

	resps := make([]ImportRecordResponse, 0, len(records))
	for _, record := range records {
		resps = append(resps, ImportRecordResponse{
			ImportUUID:       record.ImportUUID,
			OriginalFilename: record.OriginalFilename,
			FileFormat:       record.FileFormat,
			Confidence:       record.Confidence,
			ProcessingStatus: record.ProcessingStatus,
			ParserVersion:    record.ParserVersion,
			ImportedAt:       record.ImportedAt,
		})
	}
	return resps, nil
}

// ErrImportRecordNotFound 导入记录不存在
var ErrImportRecordNotFound = errors.New("导入记录不存在")
