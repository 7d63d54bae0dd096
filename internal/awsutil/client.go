package awsutil

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
)

// EC2API is the subset of *ec2.Client used for spot price discovery.
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeSpotPriceHistory(ctx context.Context, params *ec2.DescribeSpotPriceHistoryInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSpotPriceHistoryOutput, error)
}

// ClientFactory returns an EC2 client bound to region.
type ClientFactory func(region Region) EC2API

// NewClientFactory builds regional clients from cfg. Each region's client is
// created on first use and shared afterwards; the factory is safe for
// concurrent use.
func NewClientFactory(cfg aws.Config) ClientFactory {
	var (
		mu      sync.Mutex
		clients = map[Region]*ec2.Client{}
	)
	return func(region Region) EC2API {
		mu.Lock()
		defer mu.Unlock()
		if c, ok := clients[region]; ok {
			return c
		}
		regionCfg := cfg.Copy()
		regionCfg.Region = string(region)
		c := ec2.NewFromConfig(regionCfg)
		clients[region] = c
		return c
	}
}

// ErrorCode returns the provider error code carried by err, or "" if err did
// not come from the EC2 API.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
