// Package logging sets up the per-run log file. Each invocation gets
// its own timestamped file under the logs directory, next to the
// ledger's JSON records.
package logging
