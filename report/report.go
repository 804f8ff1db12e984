// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballot-ledger/models"
)

// WriteResults renders a plain-text results table for an election.
// now anchors the relative times so output is reproducible.
func WriteResults(w io.Writer, election models.Election, results []models.Result, now time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", election.Title)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(election.Title)))
	fmt.Fprintf(&b, "Status:  %s\n", election.Status)
	fmt.Fprintf(&b, "Opens:   %s\n", when(election.StartTime, now))
	fmt.Fprintf(&b, "Closes:  %s\n", when(election.EndTime, now))
	fmt.Fprintf(&b, "Votes:   %s\n", humanize.Comma(int64(election.TotalVotes)))
	fmt.Fprintf(&b, "Entries: %s\n\n", humanize.Comma(int64(len(election.Candidates))))

	if len(results) == 0 {
		b.WriteString("No votes have been cast yet.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tPARTY\tVOTES\tSHARE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%%\n",
			humanize.Ordinal(r.Rank),
			r.Candidate.Name,
			r.Candidate.Party,
			humanize.Comma(int64(r.Candidate.VoteCount)),
			humanize.FtoaWithDigits(r.Percentage, 2),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	if election.Status == models.StatusCompleted {
		fmt.Fprintf(&b, "\nWinner: %s\n", winners(results))
	} else {
		fmt.Fprintf(&b, "\nLeading: %s\n", winners(results))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// winners names every result sharing the top vote count
func winners(results []models.Result) string {
	top := results[0].Candidate.VoteCount
	var names []string
	for _, r := range results {
		if r.Candidate.VoteCount != top {
			break
		}
		names = append(names, r.Candidate.Name)
	}
	if len(names) > 1 {
		return strings.Join(names, ", ") + " (tie)"
	}
	return names[0]
}

func when(t, now time.Time) string {
	return fmt.Sprintf("%s (%s)", t.UTC().Format(time.RFC3339), humanize.RelTime(t, now, "ago", "from now"))
}
