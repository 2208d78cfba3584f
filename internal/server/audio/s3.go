// Package audio stores uploaded voice memos in S3-compatible object storage.
// Clients upload through presigned PUT URLs; the server reads objects back
// when it needs the bytes for transcription.
package audio

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignExpiry bounds how long an upload URL stays valid.
const PresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (io.ReadCloser, error) {
		out, err := c.GetObject(ctx, in)
		if err != nil {
			return nil, err
		}
		return out.Body, nil
	}
)

// Options configures the S3 connection.
type Options struct {
	AccessKey    string
	SecretKey    string
	Region       string
	BaseEndpoint string
	Bucket       string
}

// Store presigns uploads and fetches audio objects.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

// NewStore builds the S3 client once; path-style addressing keeps MinIO happy.
func NewStore(ctx context.Context, o Options) (*Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	c := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		so.UsePathStyle = true
	})

	return &Store{client: c, presign: s3.NewPresignClient(c), bucket: o.Bucket, now: time.Now}, nil
}

// UserPrefix is the key prefix owned by userID.
func UserPrefix(userID string) string {
	return "audio/" + userID + "/"
}

// defaultExtension is assumed for empty or unrecognised content types.
const defaultExtension = ".m4a"

var audioExtensions = map[string]string{
	"audio/m4a":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/mp4":    ".m4a",
	"audio/aac":    ".m4a",
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/mpga":   ".mpga",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/wave":   ".wav",
	"audio/webm":   ".webm",
	"audio/ogg":    ".ogg",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
	"video/mp4":    ".mp4",
	"video/webm":   ".webm",
}

// Extension maps an upload content type to the file extension stored on the
// key. Parameters such as codecs are ignored.
func Extension(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return defaultExtension
	}
	if ext, ok := audioExtensions[mt]; ok {
		return ext
	}
	return defaultExtension
}

// NewKey returns a fresh object key under the user's prefix. The key ends in
// an extension derived from contentType so the audio format survives the
// round trip to transcription.
func (s *Store) NewKey(userID, contentType string) string {
	d := s.now().UTC()
	return fmt.Sprintf("%s%d/%02d/%02d/%v%s", UserPrefix(userID), d.Year(), d.Month(), d.Day(), uuid.New(), Extension(contentType))
}

// Owns reports whether key lives under userID's prefix.
func Owns(userID, key string) bool {
	return userID != "" && strings.HasPrefix(key, UserPrefix(userID)) && !strings.Contains(key, "..")
}

// PresignUpload allocates a key for userID and returns it with a PUT URL.
func (s *Store) PresignUpload(ctx context.Context, userID, contentType string) (string, string, error) {
	key := s.NewKey(userID, contentType)
	in := &s3.PutObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(s.presign, ctx, in, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return key, req.URL, nil
}

// Fetch reads the whole object stored under key.
func (s *Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	body, err := getObject(s.client, ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return b, nil
}
