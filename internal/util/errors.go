package util

import "errors"

var (
	ErrEmptyAnswerInput   = errors.New("请输入答案内容！")
	ErrAPIKeyMissing      = errors.New("请输入 DeepSeek API Key")
	ErrContentMissing     = errors.New("请输入内容")
	ErrEmptyCompletion    = errors.New("API 返回内容为空")
	ErrGeminiKeyMissing   = errors.New("GEMINI_API_KEY is empty")
	ErrUnknownEngine      = errors.New("unknown extraction engine")
	ErrConversionNotFound = errors.New("conversion not found")
)
