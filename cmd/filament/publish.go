package main

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filament-ui/filament/internal/config"
)

func publishCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render and upload the static site to S3",
		Long: `Render the application to static HTML and upload it to S3.

Bucket and region come from filament.json or flags; AWS credentials
come from the usual environment and profile chain.

Examples:
  filament publish --bucket=my-site
  filament publish --bucket=my-site --prefix=preview --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd.Context(), bucket, prefix, region, pretty)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (default from filament.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object key prefix")
	cmd.Flags().StringVar(&region, "region", "", "AWS region override")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indented output")

	return cmd
}

func runPublish(ctx context.Context, bucket, prefix, region string, pretty bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if bucket == "" {
		bucket = cfg.Publish.Bucket
	}
	if prefix == "" {
		prefix = cfg.Publish.Prefix
	}
	if region == "" {
		region = cfg.Publish.Region
	}
	if bucket == "" {
		return fmt.Errorf("no bucket configured: set publish.bucket in filament.json or pass --bucket")
	}

	html, err := renderStatic(cfg, pretty)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var awsOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	key := path.Join(prefix, "index.html")
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(html),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("public, max-age=60"),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", bucket, key, err)
	}

	success("published s3://%s/%s (%s)", bucket, key, humanize.Bytes(uint64(len(html))))
	return nil
}
