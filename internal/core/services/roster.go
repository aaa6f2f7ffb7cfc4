package services

import (
	"fmt"
	"strings"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

// NoGroupColumn disables column-designated grouping for individual-rows
// rosters; each person becomes their own group.
const NoGroupColumn = -1

// MakeGroups folds tabular roster data into an ordered, merged Roster.
//
// Two layouts are supported:
//
//	group-name,email1,email2,...  duplicate group names union their emails
//	last-name,first-name,email    one group per person ("first last"), or
//	                              grouped by the designated column
//
// At most one leading header row (no email anywhere) is skipped. Blank
// rows are skipped silently; malformed rows produce a warning and are
// skipped.
// The fold is deterministic: group order and email order follow first
// appearance in the input.
func MakeGroups(
	rows [][]string, layout domain.Layout, groupColumn int,
) (domain.Roster, []domain.RosterWarning, error) {
	var (
		roster        domain.Roster
		warnings      []domain.RosterWarning
		byName        = make(map[string]int)
		started       bool
		headerSkipped bool
	)

	warn := func(row int, format string, args ...any) {
		warnings = append(warnings, domain.RosterWarning{
			Row:    row,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	add := func(name string, emails []string) {
		idx, ok := byName[name]
		if !ok {
			roster = append(roster, domain.Group{Name: name})
			idx = len(roster) - 1
			byName[name] = idx
		}
		for _, email := range emails {
			if !roster[idx].HasEmail(email) {
				roster[idx].Emails = append(roster[idx].Emails, email)
			}
		}
	}

	for i, raw := range rows {
		rowNum := i + 1
		row := trimRow(raw)
		if isBlankRow(row) {
			continue
		}

		// First data row: skip at most one header and lock in the layout.
		if !started {
			if !rowHasEmail(row) {
				if !headerSkipped {
					headerSkipped = true
					continue
				}
				warn(rowNum, "no email address")
				continue
			}
			if layout == domain.LayoutAuto {
				layout = detectLayout(row)
			}
			started = true
		}

		switch layout {
		case domain.LayoutGroups:
			name := row[0]
			if name == "" {
				warn(rowNum, "missing group name")
				continue
			}
			emails := collectEmails(row[1:])
			if len(emails) == 0 {
				warn(rowNum, "group %q: no email addresses", name)
				continue
			}
			add(name, emails)

		case domain.LayoutIndividuals:
			if len(row) < 3 || !isEmail(row[2]) {
				warn(rowNum, "missing email column")
				continue
			}
			name := row[1] + " " + row[0]
			if groupColumn != NoGroupColumn {
				if groupColumn >= len(row) || row[groupColumn] == "" {
					warn(rowNum, "missing group column %d", groupColumn)
					continue
				}
				name = row[groupColumn]
			}
			add(name, []string{row[2]})
		}
	}

	if len(roster) == 0 {
		return nil, warnings, domain.ErrEmptyRoster
	}
	return roster, warnings, nil
}

// detectLayout applies the original heuristic: a three-column row whose
// second cell is not an email is an individual-rows roster, anything else
// is group-rows.
func detectLayout(row []string) domain.Layout {
	if len(row) == 3 && !isEmail(row[1]) {
		return domain.LayoutIndividuals
	}
	return domain.LayoutGroups
}

// isEmail is deliberately loose: trimmed and containing "@". Anything
// further is the sharing API's problem, and its failure is the signal.
func isEmail(s string) bool {
	return strings.Contains(s, "@")
}

func collectEmails(cells []string) []string {
	var emails []string
	for _, c := range cells {
		if isEmail(c) {
			emails = append(emails, c)
		}
	}
	return emails
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func rowHasEmail(row []string) bool {
	for _, c := range row {
		if isEmail(c) {
			return true
		}
	}
	return false
}
