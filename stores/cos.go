package stores

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/mozillazg/go-cos"
	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/quotes"
	"go.uber.org/zap"
)

// Cos define tencent cos store
type Cos struct {
	client *cos.Client
	prefix string
}

// NewCos create tencent cos store from bucket url, the url path is used as key prefix
func NewCos(bucketURL, secretID, secretKey string) (*Cos, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		zap.L().Error("parse cos bucket url failed", zap.Error(err), zap.String("url", bucketURL))
		return nil, err
	}

	prefix := strings.Trim(u.Path, "/")
	u.Path = ""

	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  secretID,
			SecretKey: secretKey,
		},
	})

	return &Cos{client: client, prefix: prefix}, nil
}

// storePath return store path
func (s Cos) storePath(key string) string {
	return path.Join(s.prefix, key)
}

func isCosNotFound(err error) bool {
	e, ok := err.(*cos.ErrorResponse)
	return ok && e.Response != nil && e.Response.StatusCode == http.StatusNotFound
}

// Stat return stored object
func (s Cos) Stat(ctx context.Context, key string) (*Object, error) {
	response, err := s.client.Object.Head(ctx, s.storePath(key), nil)
	if err != nil {
		if isCosNotFound(err) {
			return nil, constants.ErrRecordNotFound
		}

		zap.L().Error("head series object failed", zap.Error(err), zap.String("key", key))
		return nil, err
	}

	modTime, _ := http.ParseTime(response.Header.Get("Last-Modified"))

	return &Object{
		Key:     key,
		Size:    response.ContentLength,
		ModTime: modTime,
	}, nil
}

// Save save series object
func (s Cos) Save(ctx context.Context, key string, encoder quotes.Encoder) error {
	buffer := new(bytes.Buffer)
	err := encoder.Encode(buffer)
	if err != nil {
		zap.L().Error("encode series failed", zap.Error(err), zap.String("key", key))
		return err
	}

	_, err = s.client.Object.Put(ctx, s.storePath(key), bytes.NewReader(buffer.Bytes()), nil)
	if err != nil {
		zap.L().Error("put series object failed", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

// Load load series object
func (s Cos) Load(ctx context.Context, key string, decoder quotes.Decoder) error {
	response, err := s.client.Object.Get(ctx, s.storePath(key), nil)
	if err != nil {
		if isCosNotFound(err) {
			return constants.ErrRecordNotFound
		}

		zap.L().Error("get series object failed", zap.Error(err), zap.String("key", key))
		return err
	}
	defer response.Body.Close()

	err = decoder.Decode(response.Body)
	if err != nil {
		zap.L().Error("decode series failed", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

// List list series object keys with prefix
func (s Cos) List(ctx context.Context, prefix string) ([]string, error) {
	root := ""
	if s.prefix != "" {
		root = s.prefix + "/"
	}

	var keys []string
	marker := ""
	for {
		result, _, err := s.client.Bucket.Get(ctx, &cos.BucketGetOptions{
			Prefix: root + prefix,
			Marker: marker,
		})
		if err != nil {
			zap.L().Error("list series objects failed", zap.Error(err), zap.String("prefix", prefix))
			return nil, err
		}

		for _, object := range result.Contents {
			key := strings.TrimPrefix(object.Key, root)
			if strings.Contains(key, "/") || !strings.HasSuffix(key, constants.CacheFileExt) {
				continue
			}

			keys = append(keys, key)
		}

		if !result.IsTruncated || result.NextMarker == "" {
			break
		}
		marker = result.NextMarker
	}
	sort.Strings(keys)

	return keys, nil
}

// Close close store
func (s Cos) Close() error {
	return nil
}
