// Package bikeflow serves Bluebikes station traffic for a time of day.
//
// A Service holds the current dataset with its minute buckets and answers
// traffic queries, memoizing rendered responses in an LRU cache. Server
// exposes it over HTTP:
//
//	GET /api/health
//	GET /api/traffic.{json|pb}?time=HH:MM
//	GET /api/stations/{shortName}/traffic.{json|pb}?time=HH:MM
package bikeflow
