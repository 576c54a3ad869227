package aws

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetryPolicy(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		maxAttempts int
		baseDelay   time.Duration
		want        RetryPolicy
		wantErr     bool
	}{
		{name: "default is none", mode: "", want: NoRetry()},
		{name: "none ignores attempts", mode: "none", maxAttempts: 9, want: NoRetry()},
		{
			name:        "exponential",
			mode:        "exponential",
			maxAttempts: 3,
			baseDelay:   200 * time.Millisecond,
			want:        ExponentialBackoff(3, 200*time.Millisecond),
		},
		{name: "exponential needs attempts", mode: "exponential", baseDelay: time.Second, wantErr: true},
		{name: "exponential needs delay", mode: "exponential", maxAttempts: 2, wantErr: true},
		{name: "unknown mode", mode: "adaptive", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRetryPolicy(tt.mode, tt.maxAttempts, tt.baseDelay)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetryPolicyRetryer(t *testing.T) {
	assert.IsType(t, aws.NopRetryer{}, NoRetry().Retryer())
	assert.IsType(t, aws.NopRetryer{}, RetryPolicy{}.Retryer())
	assert.Equal(t, 1, NoRetry().Retryer().MaxAttempts())

	r := ExponentialBackoff(5, 50*time.Millisecond).Retryer()
	assert.Equal(t, 5, r.MaxAttempts())
}

func TestExponentialBackoffDelay(t *testing.T) {
	b := exponentialBackoff{base: 100 * time.Millisecond, max: time.Second}

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}
	for i, w := range want {
		got, err := b.BackoffDelay(i+1, nil)
		require.NoError(t, err)
		assert.Equal(t, w, got, "attempt %d", i+1)
	}
}

func TestRetryPolicyString(t *testing.T) {
	assert.Equal(t, "none", NoRetry().String())
	assert.Equal(t, "exponential(max_attempts=3, base_delay=200ms)", ExponentialBackoff(3, 200*time.Millisecond).String())
}
