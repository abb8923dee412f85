// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that each Option sets its field and that later options
// override earlier ones.
func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want options
	}{
		{
			name: "none",
			want: options{},
		},
		{
			name: "profile",
			opts: []Option{WithProfile("drafting")},
			want: options{profile: "drafting"},
		},
		{
			name: "region and endpoint",
			opts: []Option{WithRegion("ap-northeast-1"), WithEndpoint("http://localhost:9000")},
			want: options{region: "ap-northeast-1", endpoint: "http://localhost:9000"},
		},
		{
			name: "last region wins",
			opts: []Option{WithRegion("us-east-1"), WithRegion("eu-west-1")},
			want: options{region: "eu-west-1"},
		},
		{
			name: "nil option skipped",
			opts: []Option{nil, WithProfile("p")},
			want: options{profile: "p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(tt.opts))
		})
	}
}

// TestWithRetryer verifies that WithRetryer sets the retryer function
// option.
func TestWithRetryer(t *testing.T) {
	o := apply([]Option{WithRetryer(func() awsv2.Retryer {
		return retry.NewStandard()
	})})

	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

// TestLoadAWSConfig_WithRegion verifies that region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))

	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Nil(t, cfg.BaseEndpoint)
}

// TestLoadAWSConfig_WithEndpoint verifies the endpoint override reaches the
// shared config.
func TestLoadAWSConfig_WithEndpoint(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(),
		WithRegion("us-east-1"),
		WithEndpoint("http://localhost:9000"),
	)

	require.NoError(t, err)
	require.NotNil(t, cfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *cfg.BaseEndpoint)
}

// TestLoadAWSConfig_ContextCancellation verifies that LoadAWSConfig
// tolerates a cancelled context. Either outcome is acceptable.
func TestLoadAWSConfig_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _ = LoadAWSConfig(ctx)
}

func TestNewS3Client(t *testing.T) {
	client, err := NewS3Client(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)
	assert.IsType(t, &s3v2.Client{}, client)
	assert.False(t, client.Options().UsePathStyle)

	client, err = NewS3Client(context.Background(),
		WithRegion("us-east-1"),
		WithEndpoint("http://localhost:9000"),
	)
	require.NoError(t, err)
	assert.True(t, client.Options().UsePathStyle)
}

func TestWithPathStyle(t *testing.T) {
	var o s3v2.Options
	WithPathStyle()(&o)
	assert.True(t, o.UsePathStyle)
}
