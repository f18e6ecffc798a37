package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"respcheck/adapters/questionnaire"
	"respcheck/adapters/spss"
	"respcheck/adapters/tabular"
	"respcheck/app"
	"respcheck/internal"
	"respcheck/internal/config"
	"respcheck/internal/detect"
)

func main() {
	out := flag.String("out", "delete_bad.sps", "output path for the SPSS syntax file")
	report := flag.String("report", "", "optional output path for the markdown report")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <data.csv|data.xlsx> [questionnaire.txt]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	logger := internal.NewDefaultLogger()

	detectorCfg := detect.DefaultConfig()
	if cfg.Analysis.MinStraightBatteries > 0 {
		detectorCfg.MinStraightBatteries = cfg.Analysis.MinStraightBatteries
	}
	detectorCfg.LongBatteryTierPolicy = cfg.Analysis.LongBatteryTierPolicy

	service := app.NewAnalysisService(
		tabular.NewReader(logger),
		questionnaire.NewParser(logger),
		detect.NewEngine(detectorCfg, logger),
		spss.NewGenerator(),
		logger,
	)

	req := app.AnalysisRequest{DataPath: flag.Arg(0)}
	if flag.NArg() == 2 {
		req.QuestionnairePath = flag.Arg(1)
	}

	output, err := service.Analyze(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analysis failed:", err)
		os.Exit(1)
	}

	fmt.Println(output.Report)

	if err := os.WriteFile(*out, []byte(output.Syntax), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error writing syntax file:", err)
		os.Exit(1)
	}
	fmt.Printf("Syntax saved to: %s\n", *out)

	if *report != "" {
		if err := os.WriteFile(*report, []byte(output.Report), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "error writing report file:", err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to: %s\n", *report)
	}
}
