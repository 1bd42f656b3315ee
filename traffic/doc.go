/*
Package traffic turns a trip log into per-station traffic for a time of day.

# Pipeline

Trips are bucketed once per dataset into two arrays of 1440 minute-of-day
slots, one keyed by departure minute and one by arrival minute:

	buckets := traffic.BuildBuckets(ds.Trips)
	agg := traffic.NewAggregator(ds.Stations, buckets)

Each query then re-reads the buckets through a TimeFilter:

	all := agg.Compute(traffic.NoFilter)
	f, _ := traffic.AtMinute(8*60 + 30)
	morning := agg.Compute(f)

# Window

A filter at minute m selects the buckets [m-60, m+60) modulo 1440. The window
is left-inclusive and right-exclusive, and wraps past midnight as the union
[m-60, 1440) ∪ [0, m+60).

# Results

Compute returns fresh StationTraffic records in the order of the station list.
Stations never referenced by a trip are kept with zero traffic. Trips that
reference stations missing from the list are counted but never read.

A Result also carries the RadiusScale a renderer uses to size markers. With a
filter active the scale's maximum radius shrinks with the ratio of the
window's busiest station to the busiest station of the whole day, so quiet
hours do not blow up small counts.
*/
package traffic
