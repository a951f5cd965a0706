package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ImportModulePrefix 导入模块
	ImportModulePrefix = "import"

	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityMD5ToUUID MD5到导入UUID的映射实体
	EntityMD5ToUUID = "md5_to_uuid"

	// KeyFileMD5Set 原始文件MD5集合，用于快速去重 (SET)
	// 格式: app:import:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + ImportModulePrefix + ":" + EntityDedupSet

	// KeyFileMD5ToImportUUID MD5到ImportUUID的映射 (STRING)
	// 格式: app:import:md5_to_uuid:{md5}
	KeyFileMD5ToImportUUID = AppPrefix + ":" + ImportModulePrefix + ":" + EntityMD5ToUUID + ":%s"

	// KeyImportRecordCache 导入记录查询缓存 (STRING, JSON)
	// 格式: app:import:record_cache:{import_uuid}
	KeyImportRecordCache = AppPrefix + ":" + ImportModulePrefix + ":record_cache:%s"
)

// ImportRecordCacheTTL 导入记录查询缓存的过期时间
const ImportRecordCacheTTLSeconds = 600
