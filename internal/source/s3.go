package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object is one selectable object in an S3 bucket.
type Object struct {
	Bucket       string
	Key          string
	Size         int64
	LastModified time.Time
}

func (o Object) Display() string {
	return o.Key
}

func (o Object) PreviewPath() (string, bool) {
	return o.URI(), true
}

// URI is the canonical s3://bucket/key form used as the preview cache key.
func (o Object) URI() string {
	return "s3://" + o.Bucket + "/" + o.Key
}

// ObjectLister is the slice of the S3 API the picker needs; *s3.Client
// satisfies it.
type ObjectLister interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// ListObjects collects up to max objects under prefix as the candidate
// universe for a session. max <= 0 means no limit.
func ListObjects(ctx context.Context, client ObjectLister, bucket, prefix string, max int) ([]Object, error) {
	var objects []Object

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	for {
		out, err := client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error listing s3://%s/%s: %w", bucket, prefix, err)
		}

		for _, obj := range out.Contents {
			o := Object{
				Bucket: bucket,
				Key:    aws.ToString(obj.Key),
			}
			if obj.Size != nil {
				o.Size = *obj.Size
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
			if max > 0 && len(objects) >= max {
				return objects, nil
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	return objects, nil
}

// S3Loader performs cold preview loads through the s3 download manager.
// The context is captured at construction because preview requests are
// issued synchronously from the update loop.
type S3Loader struct {
	ctx        context.Context
	downloader *manager.Downloader
	maxBytes   int64
}

func NewS3Loader(ctx context.Context, client manager.DownloadAPIClient, maxBytes int64) *S3Loader {
	return &S3Loader{
		ctx:        ctx,
		downloader: manager.NewDownloader(client),
		maxBytes:   maxBytes,
	}
}

// Canonical accepts only s3://bucket/key URIs; object keys are already
// unique within a session so no further normalization applies.
func (l *S3Loader) Canonical(path string) (string, error) {
	if _, _, err := splitURI(path); err != nil {
		return "", err
	}
	return path, nil
}

func (l *S3Loader) Load(canonicalPath string) (string, error) {
	bucket, key, err := splitURI(canonicalPath)
	if err != nil {
		return "", err
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if l.maxBytes > 0 {
		input.Range = aws.String(fmt.Sprintf("bytes=0-%d", l.maxBytes-1))
	}

	buf := manager.NewWriteAtBuffer(nil)
	if _, err := l.downloader.Download(l.ctx, buf, input); err != nil {
		return "", fmt.Errorf("error downloading %s: %w", canonicalPath, err)
	}

	content := buf.Bytes()
	for _, b := range content {
		if b == 0 {
			return "", fmt.Errorf("binary object")
		}
	}
	return string(content), nil
}

func splitURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 uri: %s", uri)
	}
	return bucket, key, nil
}
