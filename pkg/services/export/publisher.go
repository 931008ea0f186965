package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

const DefaultRegion = "us-east-1"

// ObjectPutter is the part of the S3 client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads report workbooks to an S3 bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewPublisher(client ObjectPutter, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Publisher builds a publisher from the default AWS credential chain.
func NewS3Publisher(ctx context.Context, region, bucket, prefix string) (*Publisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("export bucket is not configured")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithDefaultRegion(DefaultRegion)}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewPublisher(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

// ObjectKey names the workbook after the report's range.
func (p *Publisher) ObjectKey(rng domain.DateRange) string {
	return fmt.Sprintf("%sfinancial_%s_%s.xlsx", p.prefix, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
}

// Publish renders report and uploads it, returning the s3:// location.
func (p *Publisher) Publish(ctx context.Context, report *domain.FinancialReport) (string, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, report); err != nil {
		return "", err
	}

	key := p.ObjectKey(report.Range)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	zerolog.Ctx(ctx).Info().Str("location", location).Int("bytes", buf.Len()).Msg("report published")
	return location, nil
}
