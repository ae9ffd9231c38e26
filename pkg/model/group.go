package model

import "fmt"

// GroupCoverageKey builds the CompletionReport.GroupCoverage key for one
// (lab, group) pair.
func GroupCoverageKey(lab LabID, group string) string {
	return fmt.Sprintf("%d_%s", lab, group)
}

// Group is a named, ordered set of trainee ids. In fixed-group mode groups
// are created once per capacity class and reused for every matching lab.
type Group struct {
	Name     string
	Trainees []int
}
