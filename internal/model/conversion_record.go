package model

import (
	"crypto/sha256"
	"encoding/hex"
)

type ConversionKind string

const (
	KindDualTemplate       ConversionKind = "dual_template"
	KindLetterAnswers      ConversionKind = "letter_answers"
	KindQuestionExtraction ConversionKind = "question_extraction"
)

func (k ConversionKind) Valid() bool {
	switch k {
	case KindDualTemplate, KindLetterAnswers, KindQuestionExtraction:
		return true
	}
	return false
}

// ConversionRecord 一次转换的输入与产物
// swagger:model
type ConversionRecord struct {
	UUIDBase
	Kind         ConversionKind `gorm:"type:varchar(32);index" json:"kind"`
	InputHash    string         `gorm:"type:char(64);index" json:"inputHash"`
	Input        string         `gorm:"type:longtext" json:"input"`
	Template1    string         `gorm:"type:longtext" json:"template1,omitempty"`
	Template2    string         `gorm:"type:longtext" json:"template2,omitempty"`
	Output       string         `gorm:"type:longtext" json:"output,omitempty"`
	BlockCount   int            `json:"blockCount"`
	GradedCount  int            `json:"gradedCount"`
	SkippedCount int            `json:"skippedCount"`
	Engine       string         `gorm:"type:varchar(32)" json:"engine,omitempty"`
	ArtifactURL  string         `gorm:"type:varchar(512)" json:"artifactUrl,omitempty"`
	Failed       bool           `gorm:"default:false" json:"failed"`
}

func (ConversionRecord) TableName() string {
	return "conversion_records"
}

// HashInput 计算输入内容摘要，用作缓存键
func HashInput(kind ConversionKind, input string) string {
	sum := sha256.Sum256([]byte(string(kind) + "\x00" + input))
	return hex.EncodeToString(sum[:])
}
