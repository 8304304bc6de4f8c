// Package ledger records per-run download failures and codec attempt
// history, and persists them as human-diffable JSON under the logs
// directory at the end of a run.
package ledger
