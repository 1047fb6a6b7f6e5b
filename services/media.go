package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
)

// MediaService resolves a referenced asset id to its public URL and type.
// The backend never fetches or processes binary media itself; this is the
// narrow contract the surrounding media pipeline implements.
type MediaService interface {
	Resolve(ctx context.Context, mediaID string) (models.MediaAsset, error)
}

// StaticMediaService serves a fixed id-to-asset map. Used in tests and for
// deployments where the frontend ships its own asset manifest.
type StaticMediaService struct {
	assets map[string]models.MediaAsset
}

func NewStaticMediaService(assets map[string]models.MediaAsset) *StaticMediaService {
	if assets == nil {
		assets = map[string]models.MediaAsset{}
	}
	return &StaticMediaService{assets: assets}
}

func (s *StaticMediaService) Resolve(ctx context.Context, mediaID string) (models.MediaAsset, error) {
	asset, ok := s.assets[mediaID]
	if !ok {
		return models.MediaAsset{}, errs.NewNotFoundError("media asset", mediaID)
	}
	return asset, nil
}

// S3MediaService resolves asset ids against an S3 bucket where the media
// pipeline uploads processed files under their asset id as the object key.
// HeadObject confirms existence and yields the content type; the public URL
// is built from the configured CDN base.
type S3MediaService struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3MediaService(ctx context.Context, region, bucket, baseURL string) (*S3MediaService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3MediaService{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *S3MediaService) Resolve(ctx context.Context, mediaID string) (models.MediaAsset, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(mediaID),
	})
	if err != nil {
		return models.MediaAsset{}, errs.NewNotFoundError("media asset", mediaID)
	}

	mediaType := models.MediaImage
	if head.ContentType != nil && strings.HasPrefix(*head.ContentType, "video/") {
		mediaType = models.MediaVideo
	}

	return models.MediaAsset{
		ID:   mediaID,
		URL:  fmt.Sprintf("%s/%s", s.baseURL, mediaID),
		Type: mediaType,
	}, nil
}
