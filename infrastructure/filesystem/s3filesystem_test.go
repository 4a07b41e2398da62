package filesystem

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestWriteFile(t *testing.T) {
	p := &fakePutter{}
	fs := NewS3FileSystemWithClient(p, "reports")

	require.NoError(t, fs.WriteFile(context.Background(), "a/b.xlsx", "application/octet-stream", strings.NewReader("data")))
	assert.Equal(t, "reports", *p.input.Bucket)
	assert.Equal(t, "a/b.xlsx", *p.input.Key)
	assert.Equal(t, "application/octet-stream", *p.input.ContentType)
	assert.Equal(t, "data", p.body)

	p.err = errors.New("denied")
	err := fs.WriteFile(context.Background(), "a/b.xlsx", "", strings.NewReader(""))
	assert.EqualError(t, err, "failed to put object a/b.xlsx to bucket reports: denied")
}
