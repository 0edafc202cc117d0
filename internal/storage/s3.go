// Package storage copies a generated dataset to an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Rana718/dataforge/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of objects uploaded at once.
const DefaultConcurrency = 8

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".json": "application/json",
	".yaml": "application/yaml",
	".db":   "application/vnd.sqlite3",
	".prom": "text/plain",
}

type Uploader struct {
	client      *s3.Client
	bucket      string
	prefix      string
	concurrency int
}

// New builds an uploader from the default AWS credential chain. Endpoint and
// PathStyle point it at MinIO or another S3-compatible service.
func New(ctx context.Context, cfg config.S3) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage.s3.bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewWithClient(client *s3.Client, bucket, prefix string) *Uploader {
	return &Uploader{
		client:      client,
		bucket:      bucket,
		prefix:      strings.Trim(prefix, "/"),
		concurrency: DefaultConcurrency,
	}
}

// SetConcurrency changes how many uploads run in parallel. Values below one
// are ignored.
func (u *Uploader) SetConcurrency(n int) {
	if n >= 1 {
		u.concurrency = n
	}
}

// Key maps a path relative to the dataset root to its object key.
func (u *Uploader) Key(rel string) string {
	key := filepath.ToSlash(rel)
	if u.prefix == "" {
		return key
	}
	return path.Join(u.prefix, key)
}

// UploadDir uploads every file below dir and returns the object keys in
// lexical order. Hidden entries, such as staging directories left by an
// interrupted run, are skipped. The first failure cancels the remaining
// uploads.
func (u *Uploader) UploadDir(ctx context.Context, dir string) ([]string, error) {
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	keys := make([]string, len(files))
	for i, rel := range files {
		keys[i] = u.Key(rel)
		g.Go(func() error {
			return u.put(gctx, filepath.Join(dir, rel), keys[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (u *Uploader) put(ctx context.Context, file, key string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct, ok := contentTypes[filepath.Ext(file)]; ok {
		input.ContentType = aws.String(ct)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// listFiles returns the regular files below dir relative to it, in lexical
// order.
func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return files, nil
}
