package domain

import "strings"

// Layout identifies how roster rows map onto groups.
type Layout string

const (
	// LayoutAuto detects the layout from the first data row.
	LayoutAuto Layout = "auto"
	// LayoutGroups is "group-name,email1,email2,..." with duplicate
	// group names merged.
	LayoutGroups Layout = "groups"
	// LayoutIndividuals is "last-name,first-name,email" with one group
	// per person, or grouped by a designated column.
	LayoutIndividuals Layout = "individuals"
)

// ParseLayout converts a CLI flag value into a Layout.
func ParseLayout(s string) (Layout, bool) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutAuto, Layout(""):
		return LayoutAuto, true
	case LayoutGroups:
		return LayoutGroups, true
	case LayoutIndividuals:
		return LayoutIndividuals, true
	default:
		return "", false
	}
}

// Group is a named set of recipient email addresses that share one duplicate.
type Group struct {
	// Name is the group name, unique within a Roster after merging.
	Name string

	// Emails are the recipients, deduplicated, in first-appearance order.
	Emails []string
}

// HasEmail reports whether the group already contains the address.
// Matching is exact-case; the sharing API owns any further normalisation.
func (g *Group) HasEmail(email string) bool {
	for _, e := range g.Emails {
		if e == email {
			return true
		}
	}
	return false
}

// Roster is the ordered set of groups produced by the roster parser.
// Order follows first appearance in the input so that processing and
// summaries are deterministic.
type Roster []Group

// Find returns the group with the given name, or nil.
func (r Roster) Find(name string) *Group {
	for i := range r {
		if r[i].Name == name {
			return &r[i]
		}
	}
	return nil
}

// RecipientCount returns the total number of recipients across all groups.
func (r Roster) RecipientCount() int {
	n := 0
	for i := range r {
		n += len(r[i].Emails)
	}
	return n
}

// RosterWarning records a skipped or malformed roster row.
// Warnings are reported to the user but never abort the run.
type RosterWarning struct {
	// Row is the 1-based row number in the input.
	Row int

	// Reason describes why the row was skipped.
	Reason string
}
