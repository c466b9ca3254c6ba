// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thisistanvirjoy/university-club-election/models"
)

var (
	resultsHeader = []string{"Position", "Candidate", "Votes", "Percentage", "Winner"}
	votersHeader  = []string{"Name", "Student ID", "Email", "Semester"}
)

// WriteResultsCSV writes one row per candidate, grouped by position in
// ballot order. Rows keep the tally order, so the first row of a position
// is its winner when anyone voted.
func WriteResultsCSV(w io.Writer, res models.ElectionResults) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, pr := range res.Positions {
		for _, row := range pr.Rows {
			winner := ""
			if pr.Winner != nil && pr.Winner.CandidateID == row.CandidateID {
				winner = "yes"
			}
			record := []string{
				cell(pr.Title),
				cell(row.Name),
				strconv.Itoa(row.Count),
				FormatPercentage(row.Percentage),
				winner,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write %s: %w", pr.PositionID, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteVotersCSV writes the voter registry, one row per voter
func WriteVotersCSV(w io.Writer, voters []models.Voter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(votersHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, v := range voters {
		if err := cw.Write([]string{cell(v.Name), cell(v.StudentID), cell(v.Email), cell(v.Semester)}); err != nil {
			return fmt.Errorf("write voter %s: %w", v.Email, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatPercentage renders a tally percentage like "66.7%"
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// cell neutralizes user-entered text that a spreadsheet would run as a formula
func cell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
