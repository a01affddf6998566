package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeYAML = "application/x-yaml"
)

// 模型引擎
const (
	EngineDeepSeek = "deepseek"
	EngineGemini   = "gemini"
)
