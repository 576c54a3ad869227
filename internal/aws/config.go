package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadAwsConfig は認証情報からAWS設定を読み込む。
// リージョンは awsCtx.Region のチェーンで、リトライは awsCtx.Retry で決まる。
func LoadAwsConfig(ctx context.Context, awsCtx Context) (aws.Config, error) {
	opts := loadOptions(awsCtx)

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}

	cfg.Region = awsCtx.Region.Resolve(cfg.Region)
	return cfg, nil
}

func loadOptions(awsCtx Context) []func(*config.LoadOptions) error {
	opts := make([]func(*config.LoadOptions) error, 0, 5)

	if awsCtx.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(awsCtx.Profile))
	}
	if awsCtx.Region.Preferred != "" {
		opts = append(opts, config.WithRegion(awsCtx.Region.Preferred))
	}
	opts = append(opts, config.WithRetryer(awsCtx.Retry.Retryer))
	if awsCtx.Logger != nil {
		opts = append(opts,
			config.WithLogger(awsCtx.Logger),
			config.WithClientLogMode(awsCtx.LogMode),
		)
	}
	return opts
}

// GetConfig は遅延初期化でAWS設定を取得（初回のみ認証処理実行）
func (c *Context) GetConfig(ctx context.Context) (aws.Config, error) {
	if c.config == nil {
		cfg, err := LoadAwsConfig(ctx, *c)
		if err != nil {
			return aws.Config{}, err
		}
		c.config = &cfg
	}
	return *c.config, nil
}
