package stores

import (
	"bytes"
	"context"
	"errors"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/nzai/dayk/constants"
	"github.com/nzai/dayk/quotes"
	"go.uber.org/zap"
)

// S3Config aws s3 store config
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Prefix          string
}

// S3 define aws s3 store
type S3 struct {
	config *S3Config
	client *s3.S3
}

// NewS3 create aws s3 store
func NewS3(config *S3Config) (*S3, error) {
	if config.Bucket == "" {
		return nil, errors.New("s3.bucket undefined")
	}

	conf := aws.Config{
		Region:     aws.String(config.Region),
		MaxRetries: aws.Int(0),
	}

	// fall back to the default credential chain
	if config.AccessKeyID != "" {
		conf.Credentials = credentials.NewStaticCredentialsFromCreds(credentials.Value{
			AccessKeyID:     config.AccessKeyID,
			SecretAccessKey: config.SecretAccessKey,
		})
	}

	sess, err := session.NewSession(&conf)
	if err != nil {
		zap.L().Error("create aws session failed", zap.Error(err), zap.String("region", config.Region))
		return nil, err
	}

	return &S3{
		config: config,
		client: s3.New(sess),
	}, nil
}

// storePath return store path
func (s S3) storePath(key string) string {
	return path.Join(s.config.Prefix, key)
}

// Stat return stored object
func (s S3) Stat(ctx context.Context, key string) (*Object, error) {
	output, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.storePath(key)),
	})
	if err != nil {
		ae, ok := err.(awserr.Error)
		if ok && ae.Code() == "NotFound" {
			return nil, constants.ErrRecordNotFound
		}

		zap.L().Error("head series object failed", zap.Error(err), zap.String("key", key))
		return nil, err
	}

	return &Object{
		Key:     key,
		Size:    aws.Int64Value(output.ContentLength),
		ModTime: aws.TimeValue(output.LastModified),
	}, nil
}

// Save save series object
func (s S3) Save(ctx context.Context, key string, encoder quotes.Encoder) error {
	buffer := new(bytes.Buffer)
	err := encoder.Encode(buffer)
	if err != nil {
		zap.L().Error("encode series failed", zap.Error(err), zap.String("key", key))
		return err
	}

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.storePath(key)),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	if err != nil {
		zap.L().Error("put series object failed", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

// Load load series object
func (s S3) Load(ctx context.Context, key string, decoder quotes.Decoder) error {
	response, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.storePath(key)),
	})
	if err != nil {
		ae, ok := err.(awserr.Error)
		if ok && ae.Code() == s3.ErrCodeNoSuchKey {
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
func (s S3) List(ctx context.Context, prefix string) ([]string, error) {
	root := s.storePath("") + "/"
	if s.config.Prefix == "" {
		root = ""
	}

	var keys []string
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Bucket),
		Prefix: aws.String(root + prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			key := strings.TrimPrefix(aws.StringValue(object.Key), root)
			if strings.Contains(key, "/") || !strings.HasSuffix(key, constants.CacheFileExt) {
				continue
			}

			keys = append(keys, key)
		}
		return true
	})
	if err != nil {
		zap.L().Error("list series objects failed", zap.Error(err), zap.String("prefix", prefix))
		return nil, err
	}
	sort.Strings(keys)

	return keys, nil
}

// Close close store
func (s S3) Close() error {
	return nil
}
