package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_template_backend/internal/model"
	"exam_template_backend/internal/util"
	"io"
	"sync"
	"time"
)

type fakeStore struct {
	mu        sync.Mutex
	records   map[string]*model.ConversionRecord
	order     []string
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*model.ConversionRecord{}}
}

func (f *fakeStore) Create(ctx context.Context, r *model.ConversionRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.records[r.ID] = &cp
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeStore) UpdateArtifactURL(ctx context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return util.ErrConversionNotFound
	}
	r.ArtifactURL = url
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*model.ConversionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, util.ErrConversionNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) List(ctx context.Context, kind model.ConversionKind, page, limit int) ([]model.ConversionRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.ConversionRecord
	for _, id := range f.order {
		r, ok := f.records[id]
		if !ok || (kind != "" && r.Kind != kind) {
			continue
		}
		all = append(all, *r)
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.ConversionRecord{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return util.ErrConversionNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	sets    int
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, hash string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[hash]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(ctx context.Context, hash string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[hash] = raw
	return nil
}

type fakeUploader struct {
	mu    sync.Mutex
	files map[string]string
	err   error
}

func (u *fakeUploader) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.files == nil {
		u.files = map[string]string{}
	}
	u.files[filename] = string(data)
	return "/uploads/" + filename, nil
}

var errBoom = errors.New("boom")
