package awsutil

import "time"

type Region string

type AvailabilityZone string

type PriceQuote struct {
	Zone         AvailabilityZone
	InstanceType string
	Price        float64
	Timestamp    time.Time
}

// ResultSet is sorted ascending by price and holds at most one quote per zone.
type ResultSet []PriceQuote
