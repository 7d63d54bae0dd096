package awsutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/emaland/spotprice/internal/config"
)

// DiscoverSupportedRegions lists the enabled regions from the bootstrap region
// and keeps those that answer a one-result spot price history query. Probes
// run one at a time, in listing order. Only a failure to list regions is
// returned; a failed probe just drops that region.
func DiscoverSupportedRegions(ctx context.Context, clients ClientFactory, opts config.Options, logger *slog.Logger) ([]Region, error) {
	logger = orDiscard(logger)

	listed, err := ListRegions(ctx, clients(Region(opts.BootstrapRegion)))
	if err != nil {
		return nil, err
	}

	var supported []Region
	for _, region := range listed {
		if err := ProbeSpotSupport(ctx, clients(region), opts.ProbeInstanceType); err != nil {
			logger.Debug("region excluded", "region", region, "code", ErrorCode(err), "error", err)
			continue
		}
		supported = append(supported, region)
	}
	logger.Debug("region discovery complete", "listed", len(listed), "supported", len(supported))
	return supported, nil
}

func ListRegions(ctx context.Context, client EC2API) ([]Region, error) {
	result, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	regions := make([]Region, 0, len(result.Regions))
	for _, r := range result.Regions {
		if r.RegionName == nil {
			continue
		}
		regions = append(regions, Region(*r.RegionName))
	}
	return regions, nil
}

func ProbeSpotSupport(ctx context.Context, client EC2API, instanceType string) error {
	_, err := client.DescribeSpotPriceHistory(ctx, &ec2.DescribeSpotPriceHistoryInput{
		InstanceTypes: []types.InstanceType{types.InstanceType(instanceType)},
		MaxResults:    aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("probing spot price history: %w", err)
	}
	return nil
}
