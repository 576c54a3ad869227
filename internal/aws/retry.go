package aws

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
)

// RetryMode はSDKクライアントに注入するリトライ戦略の種類
type RetryMode string

const (
	RetryModeNone        RetryMode = "none"
	RetryModeExponential RetryMode = "exponential"
)

// MaxRetryBackoff は1回あたりの待機時間の上限
const MaxRetryBackoff = 20 * time.Second

// RetryPolicy はクライアント生成時に注入するリトライ方針。
// ゼロ値はリトライなし。
type RetryPolicy struct {
	Mode        RetryMode
	MaxAttempts int
	BaseDelay   time.Duration
}

// NoRetry は最初の失敗をそのまま返すリトライなしの方針
func NoRetry() RetryPolicy {
	return RetryPolicy{Mode: RetryModeNone}
}

// ExponentialBackoff は最大 maxAttempts 回まで試行し、待機時間を baseDelay から倍々に伸ばす
func ExponentialBackoff(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	return RetryPolicy{
		Mode:        RetryModeExponential,
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
	}
}

// ParseRetryPolicy はフラグの値からリトライ方針を組み立てる
func ParseRetryPolicy(mode string, maxAttempts int, baseDelay time.Duration) (RetryPolicy, error) {
	switch RetryMode(mode) {
	case "", RetryModeNone:
		return NoRetry(), nil
	case RetryModeExponential:
		if maxAttempts < 1 {
			return RetryPolicy{}, fmt.Errorf("❌ max-attempts は1以上を指定してください: %d", maxAttempts)
		}
		if baseDelay <= 0 {
			return RetryPolicy{}, fmt.Errorf("❌ retry-base-delay は正の値を指定してください: %s", baseDelay)
		}
		return ExponentialBackoff(maxAttempts, baseDelay), nil
	default:
		return RetryPolicy{}, fmt.Errorf("❌ 不明なリトライモード: %q (none|exponential)", mode)
	}
}

// Retryer は方針に対応するSDKのリトライヤーを生成
func (p RetryPolicy) Retryer() aws.Retryer {
	if p.Mode != RetryModeExponential {
		return aws.NopRetryer{}
	}
	return retry.NewStandard(func(o *retry.StandardOptions) {
		o.MaxAttempts = p.MaxAttempts
		o.MaxBackoff = MaxRetryBackoff
		o.Backoff = exponentialBackoff{base: p.BaseDelay, max: MaxRetryBackoff}
	})
}

func (p RetryPolicy) String() string {
	if p.Mode != RetryModeExponential {
		return string(RetryModeNone)
	}
	return fmt.Sprintf("%s(max_attempts=%d, base_delay=%s)", p.Mode, p.MaxAttempts, p.BaseDelay)
}

// exponentialBackoff はジッターなしの retry.BackoffDelayer
type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

func (b exponentialBackoff) BackoffDelay(attempt int, _ error) (time.Duration, error) {
	delay := b.base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= b.max {
			return b.max, nil
		}
	}
	if delay > b.max {
		return b.max, nil
	}
	return delay, nil
}
