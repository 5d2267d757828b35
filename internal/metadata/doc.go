// Package metadata provides run and dataset identity plus consistency
// checks for load metadata.
//
// Run IDs are random UUIDs stamped on each pipeline run and echoed in
// report footers. Dataset IDs are deterministic UUID v5 values derived
// from the normalized input path, so the same file yields the same
// identity across runs and machines.
package metadata
