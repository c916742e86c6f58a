// Package dirstatus scans the immediate children of a directory, refreshes and
// probes every git working tree found there, and renders the results as the
// dir-status table.
package dirstatus
