// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders election results and the voter registry as CSV.

	res := svc.Results()
	err := export.WriteResultsCSV(w, res)

Results columns: Position, Candidate, Votes, Percentage, Winner.
Percentages use one decimal place ("66.7%").

Voter columns: Name, Student ID, Email, Semester.
*/
package export
