package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"

	"github.com/emaland/spotprice/internal/awsutil"
	spotconfig "github.com/emaland/spotprice/internal/config"
)

// BaseEndpointOverride points every AWS client at a single endpoint (LocalStack in tests).
var BaseEndpointOverride string

const awsCredentialGuidance = `AWS credentials not found. Configure them using one of:

  aws sso login                        If you use AWS IAM Identity Center (SSO)
  aws configure                        Interactive setup for ~/.aws/credentials
  export AWS_ACCESS_KEY_ID=...         Set credentials via environment variables
  export AWS_SECRET_ACCESS_KEY=...
  export AWS_PROFILE=my-profile        Use a named profile from ~/.aws/config

Docs: https://docs.aws.amazon.com/cli/latest/userguide/cli-configure-files.html`

func NewRootCmd() *cobra.Command {
	var instanceType string

	root := &cobra.Command{
		Use:   "spotprice --instance-type <type>",
		Short: "Show the cheapest spot price per availability zone across all regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := spotconfig.DefaultOptions()
			if err := opts.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			awsCfg, err := loadAWSConfig(ctx, opts.BootstrapRegion, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runPrices(ctx, awsutil.NewClientFactory(awsCfg), instanceType, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}
	root.Flags().StringVar(&instanceType, "instance-type", "", "EC2 instance type (e.g. t3.micro, m5.large)")
	_ = root.MarkFlagRequired("instance-type")
	return root
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadAWSConfig resolves the default AWS config, falling back to
// defaultRegion, and verifies the credentials before any region is queried.
func loadAWSConfig(ctx context.Context, defaultRegion string, stderr io.Writer) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if BaseEndpointOverride != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(BaseEndpointOverride))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	stsClient := sts.NewFromConfig(cfg)
	if _, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}); err != nil {
		fmt.Fprintln(stderr, awsCredentialGuidance)
		return aws.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}

func runPrices(ctx context.Context, clients awsutil.ClientFactory, instanceType string, opts spotconfig.Options, stdout, stderr io.Writer) error {
	logger := newLogger(stderr)

	spin := startProgress(stderr, "Discovering regions with spot pricing...")
	regions, err := awsutil.DiscoverSupportedRegions(ctx, clients, opts, logger)
	spin.Stop()
	if err != nil {
		return err
	}

	results := awsutil.Aggregate(ctx, clients, regions, instanceType, opts, logger)
	return printPrices(stdout, results)
}
