// Package timefmt renders elapsed durations as compact "Ndays Nh Nm Ns" strings
// used by the branch and repository reports.
package timefmt
