package config

import (
	"errors"
	"fmt"
	"time"
)

type Options struct {
	BootstrapRegion    string
	ProbeInstanceType  string
	ProductDescription string
	Lookback           time.Duration
	MaxResults         int32
	Workers            int
	Limit              int

	// Now is the clock used to compute the history window. Nil means time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		BootstrapRegion:    "us-east-1",
		ProbeInstanceType:  "t3.micro",
		ProductDescription: "Linux/UNIX",
		Lookback:           24 * time.Hour,
		MaxResults:         50,
		Workers:            10,
		Limit:              20,
	}
}

func (o Options) Validate() error {
	var errs []error
	if o.BootstrapRegion == "" {
		errs = append(errs, errors.New("bootstrap region is empty"))
	}
	if o.ProbeInstanceType == "" {
		errs = append(errs, errors.New("probe instance type is empty"))
	}
	if o.ProductDescription == "" {
		errs = append(errs, errors.New("product description is empty"))
	}
	if o.Lookback <= 0 {
		errs = append(errs, fmt.Errorf("lookback must be positive, got %s", o.Lookback))
	}
	if o.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max results must be positive, got %d", o.MaxResults))
	}
	if o.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", o.Workers))
	}
	if o.Limit <= 0 {
		errs = append(errs, fmt.Errorf("limit must be positive, got %d", o.Limit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid options: %w", errors.Join(errs...))
	}
	return nil
}

// Since returns the start of the spot price history window.
func (o Options) Since() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return now().Add(-o.Lookback)
}
