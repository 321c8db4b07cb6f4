package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func writeJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printScoreWeek(w io.Writer, format string, r usecase.ScoreWeekResult) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "run %s: season %d week %d, %d/%d games final, took %s\n",
		r.RunID, r.SeasonID, r.WeekNumber, r.FinalGames, r.TotalGames, r.Duration)
	if r.Skipped() {
		fmt.Fprintln(w, "nothing to score")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tUSER\tCONFIDENCE\tPLAYOFF\tSTRIKES\tELIMINATED")
	for _, u := range r.Users {
		rank := "-"
		if u.Rank > 0 {
			rank = fmt.Sprint(u.Rank)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%t\n", rank, u.UserID, u.ConfidencePoints, u.PlayoffPoints, u.SurvivorStrikes, u.IsEliminated)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning %s: %s\n", warn.Code, warn.Message)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "failed %s (%s): %s\n", f.UserID, f.Stage, f.Message)
	}
	return nil
}

func printScorePending(w io.Writer, format string, r usecase.ScorePendingResult) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "run %s: %d week(s) scored, %d failed\n", r.RunID, len(r.Weeks), len(r.Failures))
	for _, week := range r.Weeks {
		fmt.Fprintf(w, "  season %d week %d: %d users, %d warnings\n", week.SeasonID, week.WeekNumber, len(week.Users), len(week.Warnings))
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  season %d week %d failed: %s\n", f.SeasonID, f.WeekID, f.Message)
	}
	return nil
}

func printStandings(w io.Writer, format string, s usecase.SeasonStandings) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(w, s)
	}

	fmt.Fprintf(w, "season %d standings\n", s.Season.Year)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tUSER\tPLAYOFF\tCONFIDENCE\tSTRIKES\tELIMINATED")
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%t\n", e.Position, e.UserID, e.PlayoffPoints, e.ConfidencePoints, e.SurvivorStrikes, e.IsEliminated)
	}
	return tw.Flush()
}
