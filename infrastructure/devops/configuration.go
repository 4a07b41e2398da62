package devops

import (
	"context"
	"fmt"

	"axiapac.com/attendance/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// LoadConfig reads the YAML configuration stored in an SSM SecureString parameter.
func LoadConfig(ctx context.Context, paramName string) (*config.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return LoadConfigFrom(ctx, ssm.NewFromConfig(cfg), paramName)
}

func LoadConfigFrom(ctx context.Context, client ParameterGetter, paramName string) (*config.Config, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("parameter %s is empty", paramName)
	}

	return config.Parse([]byte(*out.Parameter.Value))
}
