package service

import (
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageService_FallsBackToLocal(t *testing.T) {
	for _, typ := range []string{util.StorageMinio, util.StorageOSS, "unknown"} {
		t.Run(typ, func(t *testing.T) {
			cfg := &config.Config{Storage: config.StorageConfig{Type: typ, LocalPath: t.TempDir()}}
			s := NewStorageService(cfg)
			_, ok := s.Provider.(*LocalStorageProvider)
			assert.True(t, ok)
		})
	}
}

func TestLocalStorage_UploadDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})
	ctx := context.Background()

	body := "type: objective\nanswers:\n"
	url, err := s.Upload(ctx, "templates/abc.yaml", strings.NewReader(body), int64(len(body)), util.MimeYAML)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/templates/abc.yaml", url)

	data, err := os.ReadFile(filepath.Join(dir, "templates", "abc.yaml"))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	key := s.ObjectKeyFromURL(url)
	assert.Equal(t, "templates/abc.yaml", key)
	assert.Equal(t, "", s.ObjectKeyFromURL("https://elsewhere/x.yaml"))

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "templates", "abc.yaml"))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, s.Delete(ctx, key))
}
