package awsutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/emaland/spotprice/internal/config"
)

// FetchRegionPrices queries one region's recent spot price history for
// instanceType and returns the lowest quote seen per availability zone, zones
// in first-seen order. Equal prices keep the earlier entry.
func FetchRegionPrices(ctx context.Context, client EC2API, instanceType string, opts config.Options) ([]PriceQuote, error) {
	result, err := client.DescribeSpotPriceHistory(ctx, &ec2.DescribeSpotPriceHistoryInput{
		InstanceTypes:       []types.InstanceType{types.InstanceType(instanceType)},
		ProductDescriptions: []string{opts.ProductDescription},
		MaxResults:          aws.Int32(opts.MaxResults),
		StartTime:           aws.Time(opts.Since()),
	})
	if err != nil {
		return nil, fmt.Errorf("describing spot price history: %w", err)
	}
	return lowestPerZone(result.SpotPriceHistory)
}

func lowestPerZone(history []types.SpotPrice) ([]PriceQuote, error) {
	index := map[AvailabilityZone]int{}
	var quotes []PriceQuote
	for i, sp := range history {
		q, err := toQuote(sp)
		if err != nil {
			return nil, fmt.Errorf("spot price entry %d: %w", i, err)
		}
		pos, ok := index[q.Zone]
		if !ok {
			index[q.Zone] = len(quotes)
			quotes = append(quotes, q)
			continue
		}
		if q.Price < quotes[pos].Price {
			quotes[pos] = q
		}
	}
	return quotes, nil
}

func toQuote(sp types.SpotPrice) (PriceQuote, error) {
	if sp.AvailabilityZone == nil || *sp.AvailabilityZone == "" {
		return PriceQuote{}, errors.New("missing availability zone")
	}
	if sp.SpotPrice == nil {
		return PriceQuote{}, fmt.Errorf("missing price for %s", *sp.AvailabilityZone)
	}
	if sp.Timestamp == nil {
		return PriceQuote{}, fmt.Errorf("missing timestamp for %s", *sp.AvailabilityZone)
	}
	price, err := strconv.ParseFloat(*sp.SpotPrice, 64)
	if err != nil {
		return PriceQuote{}, fmt.Errorf("parsing price %q for %s: %w", *sp.SpotPrice, *sp.AvailabilityZone, err)
	}
	return PriceQuote{
		Zone:         AvailabilityZone(*sp.AvailabilityZone),
		InstanceType: string(sp.InstanceType),
		Price:        price,
		Timestamp:    *sp.Timestamp,
	}, nil
}
