package awsutil

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/emaland/spotprice/internal/config"
)

// Aggregate fetches spot prices for every region in parallel, bounded by
// opts.Workers, and reduces them to the opts.Limit cheapest zones. A region
// whose fetch fails is logged and contributes nothing.
func Aggregate(ctx context.Context, clients ClientFactory, regions []Region, instanceType string, opts config.Options, logger *slog.Logger) ResultSet {
	logger = orDiscard(logger)

	perRegion := make([][]PriceQuote, len(regions))

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, region := range regions {
		g.Go(func() error {
			quotes, err := FetchRegionPrices(ctx, clients(region), instanceType, opts)
			if err != nil {
				logger.Warn("error fetching spot prices",
					"region", region,
					"code", ErrorCode(err),
					"error", err,
				)
				return nil
			}
			perRegion[i] = quotes
			return nil
		})
	}
	_ = g.Wait()

	return Reduce(perRegion, opts.Limit)
}

// Reduce concatenates per-region quotes in order, sorts them by price keeping
// the input order of equal prices, and truncates to limit.
func Reduce(perRegion [][]PriceQuote, limit int) ResultSet {
	var all ResultSet
	for _, quotes := range perRegion {
		all = append(all, quotes...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Price < all[j].Price })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
