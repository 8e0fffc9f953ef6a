package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3 struct {
	Client        *s3.Client
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	return &S3{
		Client:        s3.NewFromConfig(awsCfg),
		Bucket:        cfg.Bucket,
		Prefix:        cfg.Prefix,
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	ext, err := CheckImage(in)
	if err != nil {
		return PutResult{}, err
	}

	key := path.Join(strings.Trim(s.Prefix, "/"), folder(in.Folder), uuid.NewString()+ext)
	ct := contentType(ext, in.ContentType)

	put := &s3.PutObjectInput{
		Bucket:      &s.Bucket,
		Key:         &key,
		Body:        io.LimitReader(r, MaxImageSize),
		ContentType: &ct,
	}
	if in.Size > 0 {
		put.ContentLength = &in.Size
	}
	if _, err := s.Client.PutObject(ctx, put); err != nil {
		return PutResult{}, fmt.Errorf("s3 put %s: %w", key, err)
	}

	return PutResult{Key: key, URL: s.PublicBaseURL + "/" + key}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	return err
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.Prefix) }
