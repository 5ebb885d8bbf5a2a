// Package resource provides process-wide limits for memory, background
// work, and IO throughput. A nil *Controller disables all limits, so
// callers never need to branch on whether limiting is configured.
package resource
