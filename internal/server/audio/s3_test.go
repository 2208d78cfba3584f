package audio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		Bucket:       "voicememo",
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), testOptions())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestNewStore_AppliesRegionAndEndpoint(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var region string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		return aws.Config{Region: lo.Region}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	_, err := NewStore(context.Background(), testOptions())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewStore_ConfigError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewStore(context.Background(), testOptions())
	assert.ErrorContains(t, err, "no config")
}

func TestNewKey_UnderUserPrefix(t *testing.T) {
	s := newTestStore(t)

	k := s.NewKey("u1", "audio/mp4")
	assert.True(t, strings.HasPrefix(k, "audio/u1/2024/03/07/"), k)
	assert.True(t, strings.HasSuffix(k, ".m4a"), k)
	assert.True(t, Owns("u1", k))
	assert.False(t, Owns("u2", k))
	assert.NotEqual(t, k, s.NewKey("u1", "audio/mp4"))
}

func TestExtension(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"audio/mp4", ".m4a"},
		{"audio/x-m4a", ".m4a"},
		{"audio/mpeg", ".mp3"},
		{"audio/wav", ".wav"},
		{"audio/webm; codecs=opus", ".webm"},
		{"AUDIO/OGG", ".ogg"},
		{"application/octet-stream", ".m4a"},
		{"", ".m4a"},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.contentType))
		})
	}
}

func TestOwns(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		key    string
		want   bool
	}{
		{"own key", "u1", "audio/u1/2024/01/01/x", true},
		{"other user", "u1", "audio/u2/2024/01/01/x", false},
		{"prefix of another id", "u1", "audio/u10/x", false},
		{"traversal", "u1", "audio/u1/../u2/x", false},
		{"empty user", "", "audio//x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Owns(tt.userID, tt.key))
		})
	}
}

func TestPresignUpload_SignsPutURL(t *testing.T) {
	s := newTestStore(t)

	key, raw, err := s.PresignUpload(context.Background(), "u1", "audio/wav")
	require.NoError(t, err)
	assert.True(t, Owns("u1", key))
	assert.True(t, strings.HasSuffix(key, ".wav"), key)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/voicememo/"+key, u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignUpload_Error(t *testing.T) {
	s := newTestStore(t)

	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign failed")
	}

	_, _, err := s.PresignUpload(context.Background(), "u1", "")
	assert.ErrorContains(t, err, "sign failed")
}

func TestFetch(t *testing.T) {
	s := newTestStore(t)

	orig := getObject
	t.Cleanup(func() { getObject = orig })

	var gotKey string
	getObject = func(_ *s3.Client, _ context.Context, in *s3.GetObjectInput) (io.ReadCloser, error) {
		gotKey = *in.Key
		if *in.Key == "missing" {
			return nil, errors.New("NoSuchKey")
		}
		return io.NopCloser(bytes.NewReader([]byte("RIFF"))), nil
	}

	b, err := s.Fetch(context.Background(), "audio/u1/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), b)
	assert.Equal(t, "audio/u1/a", gotKey)

	_, err = s.Fetch(context.Background(), "missing")
	assert.ErrorContains(t, err, "NoSuchKey")
}
