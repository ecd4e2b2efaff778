package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cognicore/sentitag/pkg/sentitag/store"
	"github.com/cognicore/sentitag/pkg/sentitag/store/sqlite"
)

func main() {
	var (
		dbPath = flag.String("db", "sentitag.db", "SQLite database written by sentitag")
		runID  = flag.String("run", "", "Show the file reports of one run")
		path   = flag.String("path", "", "Show the report history of one corpus file")
		limit  = flag.Int("limit", 10, "Maximum runs or history entries to show")
	)
	flag.Parse()

	ctx := context.Background()
	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	switch {
	case *runID != "":
		reports, err := st.ReportsByRun(ctx, *runID)
		if err != nil {
			log.Fatalf("load run %s: %v", *runID, err)
		}
		printReports(os.Stdout, reports)
	case *path != "":
		reports, err := st.History(ctx, *path, *limit)
		if err != nil {
			log.Fatalf("load history for %s: %v", *path, err)
		}
		printReports(os.Stdout, reports)
	default:
		runs, err := st.Runs(ctx, *limit)
		if err != nil {
			log.Fatalf("load runs: %v", err)
		}
		printRuns(os.Stdout, runs)
	}
}

func printRuns(out io.Writer, runs []store.Run) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tFILES\tFAILED\tWORDS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Files, r.Failed, r.Words)
	}
	w.Flush()
}

func printReports(out io.Writer, reports []store.Report) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tFILE\tREVIEWS\tWORDS\tMEDIAN\tADJ\tADV\tADJ+ADV\tSTATUS")
	for _, r := range reports {
		status := "ok"
		if r.Failed() {
			status = r.Err
		}
		s := r.Stats
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\t%.4f\t%.4f\t%.4f\t%s\n",
			r.Domain, r.Path, s.Reviews, s.Words, s.MedianLen,
			s.AdjRatio, s.AdvRatio, s.AdjAdvRatio, status)
	}
	w.Flush()
}
