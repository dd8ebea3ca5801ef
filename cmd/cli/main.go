// Command cli runs one equity audit over a local CSV or XLSX file and
// prints the report to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"giftedlens/adapters/tabular"
	"giftedlens/app"
	"giftedlens/domain/pipeline"
	"giftedlens/domain/rates"

	"github.com/joho/godotenv"
)

func main() {
	var (
		file       = flag.String("file", "", "path to the CSV or XLSX file (required)")
		groupBy    = flag.String("group", pipeline.ColRaceEthnicity, "grouping attribute")
		outcome    = flag.String("outcome", string(pipeline.StageQualified), "pipeline outcome")
		reference  = flag.String("reference", "", "reference group (blank = highest rate)")
		minSize    = flag.Int("min-size", 10, "minimum group size")
		latestYear = flag.Bool("latest-year", true, "filter to the most recent school year")
	)
	flag.Parse()

	_ = godotenv.Load()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	stage, ok := pipeline.ParseStage(*outcome)
	if !ok {
		log.Fatalf("unknown outcome %q (expected one of %v)", *outcome, pipeline.Stages())
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	ds, err := tabular.NewReader(nil).Read(f, *file)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *file, err)
	}

	report, err := app.NewAuditService().Run(ds, app.AuditQuery{
		GroupBy:        *groupBy,
		Outcome:        stage,
		Reference:      *reference,
		MinGroupSize:   *minSize,
		LatestYearOnly: *latestYear,
	})
	if err != nil {
		log.Fatalf("audit failed: %v", err)
	}

	printReport(report)
}

func printReport(report *app.AuditReport) {
	fmt.Printf("Rows analyzed: %d\n", report.RowCount)
	fmt.Printf("Referral rate: %s  Qualification rate: %s  Placement rate: %s\n\n",
		report.Overview.ReferralRate.Percent(),
		report.Overview.QualificationRate.Percent(),
		report.Overview.PlacementRate.Percent())

	if !report.HasGroups() {
		fmt.Printf("No groups of %q meet the minimum size %d.\n",
			report.Query.GroupBy, report.Query.MinGroupSize)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tn\trate\tdiff vs overall\trisk ratio\trate vs ref\n", report.Query.GroupBy)
	for _, row := range report.Disparity {
		group := row.Group
		if group == "" {
			group = "(missing)"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			group, row.N,
			row.Rate.Percent(),
			row.RateDiffVsOverall.Percent(),
			ratioString(row.RiskRatioVsOverall),
			ratioString(row.RateVsRef))
	}
	w.Flush()

	fmt.Printf("\nReference group: %s\n", report.Disparity[0].ReferenceGroup)

	if report.Significance.Applicable {
		fmt.Printf("Chi-square: %.2f (df %d), p = %.4f, Cramer's V = %.3f\n",
			report.Significance.Statistic, report.Significance.DF,
			report.Significance.PValue, report.Significance.CramersV)
	}

	fmt.Println("\nPipeline funnel:")
	for _, sc := range report.Funnel {
		fmt.Printf("  %-10s %d\n", sc.Stage, sc.Count)
	}
}

func ratioString(r rates.Rate) string {
	v, ok := r.Value()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2fx", v)
}
