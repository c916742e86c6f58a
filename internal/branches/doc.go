// Package branches lists the local branches of one repository with the committer
// time of each tip, newest first, and renders them as the branches table.
package branches
