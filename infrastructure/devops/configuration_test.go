package devops

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	value *string
	err   error
	input *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: f.value}}, nil
}

func TestLoadConfigFrom(t *testing.T) {
	f := &fakeSSM{value: aws.String(`
server: {signingSecret: "c2VjcmV0"}
attendance: {baseUrl: "https://hr.example.com"}
`)}
	cfg, err := LoadConfigFrom(context.Background(), f, "/punchclock/config")
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com", cfg.Attendance.BaseURL)
	assert.Equal(t, "/punchclock/config", *f.input.Name)
	assert.True(t, *f.input.WithDecryption)
}

func TestLoadConfigFromErrors(t *testing.T) {
	_, err := LoadConfigFrom(context.Background(), &fakeSSM{err: errors.New("access denied")}, "p")
	assert.ErrorContains(t, err, "access denied")

	_, err = LoadConfigFrom(context.Background(), &fakeSSM{}, "p")
	assert.EqualError(t, err, "parameter p is empty")
}
