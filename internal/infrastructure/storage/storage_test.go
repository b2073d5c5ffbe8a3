package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "tournaments/evening-clash-abc12345.png", ObjectKey("tournaments", "Evening Clash.PNG", "abc12345"))
	assert.Equal(t, "logos/image-x.jpg", ObjectKey("logos", "???.jpg", "x"))
}

func TestUpload(t *testing.T) {
	putter := &fakePutter{}
	store := newS3Store(putter, "hub", "https://cdn.example.com/", logger.NewNop())

	url, err := store.Upload(context.Background(), "tournaments", "map.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	key := aws.ToString(putter.input.Key)
	assert.True(t, strings.HasPrefix(key, "tournaments/map-"))
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, "hub", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, "png-bytes", putter.body)

	putter.err = errors.New("access denied")
	_, err = store.Upload(context.Background(), "logos", "logo.png", "image/png", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Enabled: false}, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, store.Enabled())

	_, err = store.Upload(context.Background(), "logos", "logo.png", "image/png", strings.NewReader("x"))
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeStorageDisabled, appErr.Code)
}
