package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImagePresigner issues presigned PUT URLs for product images.
type ImagePresigner struct {
	presigner        *s3.PresignClient
	bucket           string
	prefix           string
	cloudfrontDomain string
	region           string
}

func NewImagePresigner(cfg sdkaws.Config, bucket, prefix, cloudfrontDomain string) *ImagePresigner {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &ImagePresigner{
		presigner:        s3.NewPresignClient(client),
		bucket:           bucket,
		prefix:           prefix,
		cloudfrontDomain: cloudfrontDomain,
		region:           cfg.Region,
	}
}

// PresignPut returns a URL the client can PUT the object to, the signed
// headers it must send and the object key.
func (p *ImagePresigner) PresignPut(ctx context.Context, name, contentType string, expiry time.Duration) (string, map[string]string, string, error) {
	key := p.prefix + name
	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(p.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := p.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return presigned.URL, headers, key, nil
}

// PublicURL is where the object will be served from once uploaded.
func (p *ImagePresigner) PublicURL(key string) string {
	if p.cloudfrontDomain != "" {
		return "https://" + strings.TrimSuffix(p.cloudfrontDomain, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}
