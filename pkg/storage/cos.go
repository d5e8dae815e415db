package stores

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"
)

// COSStore stores objects in Tencent Cloud COS. cfg.Endpoint is the full
// bucket URL, e.g. "https://bucket-appid.cos.ap-guangzhou.myqcloud.com".
type COSStore struct {
	cfg Config
	cli *cos.Client
}

func NewCOSStore(cfg Config) (*COSStore, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	cli := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		},
	})
	return &COSStore{cfg: cfg, cli: cli}, nil
}

func (s *COSStore) Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}
	_, err := s.cli.Object.Put(ctx, key, r, opt)
	return err
}

func (s *COSStore) Read(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	resp, err := s.cli.Object.Get(ctx, key, nil)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

func (s *COSStore) Delete(ctx context.Context, key string) error {
	_, err := s.cli.Object.Delete(ctx, key)
	return err
}

func (s *COSStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.cli.Object.IsExist(ctx, key)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *COSStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	marker := ""
	for {
		res, _, err := s.cli.Bucket.Get(ctx, &cos.BucketGetOptions{Prefix: prefix, Marker: marker})
		if err != nil {
			return nil, err
		}
		for _, obj := range res.Contents {
			mod, _ := time.Parse(time.RFC3339, obj.LastModified)
			out = append(out, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: mod})
		}
		if !res.IsTruncated {
			break
		}
		marker = res.NextMarker
	}
	return out, nil
}

func (s *COSStore) PublicURL(key string) string {
	if s.cfg.BaseURL != "" {
		return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + key
	}
	return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + key
}
