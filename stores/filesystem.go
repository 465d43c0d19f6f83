package stores

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/quotes"
	"go.uber.org/zap"
)

// FileSystem define file system store
type FileSystem struct {
	root string
}

// NewFileSystem create file system store
func NewFileSystem(root string) *FileSystem {
	return &FileSystem{root: root}
}

// storePath return store path
func (s FileSystem) storePath(key string) string {
	return filepath.Join(s.root, key)
}

// Stat return stored file info
func (s FileSystem) Stat(ctx context.Context, key string) (*Object, error) {
	info, err := os.Stat(s.storePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, constants.ErrRecordNotFound
		}

		zap.L().Error("stat series file failed", zap.Error(err), zap.String("key", key))
		return nil, err
	}

	return &Object{Key: key, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Save save series to file, the whole file is written at once
func (s FileSystem) Save(ctx context.Context, key string, encoder quotes.Encoder) error {
	// ensure store path
	filePath := s.storePath(key)
	err := s.ensureDir(filepath.Dir(filePath))
	if err != nil {
		zap.L().Error("ensure save path failed",
			zap.Error(err),
			zap.String("key", key),
			zap.String("path", filePath))
		return err
	}

	buffer := new(bytes.Buffer)
	err = encoder.Encode(buffer)
	if err != nil {
		zap.L().Error("encode series failed", zap.Error(err), zap.String("key", key))
		return err
	}

	// write to temp file then rename
	temp := filePath + ".tmp"
	err = os.WriteFile(temp, buffer.Bytes(), 0644)
	if err != nil {
		zap.L().Error("save series failed", zap.Error(err), zap.String("key", key))
		return err
	}

	err = os.Rename(temp, filePath)
	if err != nil {
		os.Remove(temp)
		zap.L().Error("rename series file failed", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

// Load load series from file
func (s FileSystem) Load(ctx context.Context, key string, decoder quotes.Decoder) error {
	file, err := os.Open(s.storePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return constants.ErrRecordNotFound
		}

		zap.L().Error("open series file failed", zap.Error(err), zap.String("key", key))
		return err
	}
	defer file.Close()

	err = decoder.Decode(file)
	if err != nil {
		zap.L().Error("decode series failed", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

// List list series files with prefix
func (s FileSystem) List(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}

		zap.L().Error("read store dir failed", zap.Error(err), zap.String("root", s.root))
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) || !strings.HasSuffix(entry.Name(), constants.CacheFileExt) {
			continue
		}

		keys = append(keys, entry.Name())
	}
	sort.Strings(keys)

	return keys, nil
}

// Close close store
func (s FileSystem) Close() error {
	return nil
}

// ensureDir ensure target dir exists
func (s FileSystem) ensureDir(dir string) error {
	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}

	err = s.ensureDir(filepath.Dir(dir))
	if err != nil {
		return err
	}

	err = os.Mkdir(dir, 0755)
	if err != nil && !os.IsExist(err) {
		return err
	}

	return nil
}
