//
// Copyright (c) 2020-2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gvallee/go_util/pkg/util"

	"github.com/RobWatersMet/VernierParser/internal/pkg/format"
	"github.com/RobWatersMet/VernierParser/internal/pkg/plot"
	"github.com/RobWatersMet/VernierParser/internal/pkg/report"
	"github.com/RobWatersMet/VernierParser/internal/pkg/series"
	"github.com/RobWatersMet/VernierParser/internal/pkg/timer"
	"github.com/RobWatersMet/VernierParser/internal/pkg/timings"
	"github.com/RobWatersMet/VernierParser/internal/pkg/vernier"
)

type config struct {
	runPath   string
	csvPath   string
	field     vernier.Field
	allFields bool
	mdPath    string
	htmlPath  string
	plotPath  string
	workers   int
	progress  io.Writer
}

func resolveRunPath(runDir string, configDir string, runNum string, args []string) (string, error) {
	if runDir != "" {
		return runDir, nil
	}
	if configDir != "" {
		if runNum == "" {
			return "", fmt.Errorf("-config requires -run-num")
		}
		return series.RunPath(configDir, runNum), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", fmt.Errorf("no run specified")
}

func loadSeries(cfg *config) (*series.Series, error) {
	s, err := series.New(cfg.runPath)
	if err != nil {
		return nil, err
	}
	s.Progress = cfg.progress

	if cfg.workers > 0 {
		err = s.LoadConcurrently(context.Background(), cfg.workers)
	} else {
		err = s.Load()
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func writeOutputs(cfg *config, s *series.Series) error {
	summary, err := s.Summarise(cfg.field)
	if err != nil {
		return err
	}

	if cfg.allFields {
		summaries := make(map[vernier.Field]map[string]timings.Stats)
		for _, f := range vernier.Fields {
			summaries[f], err = s.Summarise(f)
			if err != nil {
				return err
			}
		}
		err = format.WriteAllFieldsCSV(cfg.csvPath, summaries)
	} else {
		err = format.WriteCSV(cfg.csvPath, summary)
	}
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", cfg.csvPath, err)
	}
	if !util.FileExists(cfg.csvPath) {
		return fmt.Errorf("output csv %s does not exist, something has gone wrong", cfg.csvPath)
	}
	log.Printf("-> Summary saved in %s\n", cfg.csvPath)

	if cfg.mdPath != "" || cfg.htmlPath != "" {
		info, err := report.GetInfo(s)
		if err != nil {
			return err
		}
		if cfg.mdPath != "" {
			err = report.WriteMarkdown(cfg.mdPath, info, cfg.field, summary)
			if err != nil {
				return fmt.Errorf("unable to write %s: %w", cfg.mdPath, err)
			}
		}
		if cfg.htmlPath != "" {
			err = report.WriteHTML(cfg.htmlPath, info, cfg.field, summary)
			if err != nil {
				return fmt.Errorf("unable to write %s: %w", cfg.htmlPath, err)
			}
		}
	}

	if cfg.plotPath != "" {
		err = plot.Summary(cfg.plotPath, cfg.field, summary)
		if err != nil {
			return fmt.Errorf("unable to plot %s: %w", cfg.plotPath, err)
		}
	}

	return nil
}

func run(cfg *config) error {
	totalNumSteps := 2

	fmt.Printf("* Step 1/%d: loading vernier data from %s...\n", totalNumSteps, cfg.runPath)
	t := timer.Start()
	s, err := loadSeries(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Step completed in %s (%d ranks)\n", t.Stop(), s.NumRanks)

	fmt.Printf("\n* Step 2/%d: summarising %s...\n", totalNumSteps, cfg.field)
	t = timer.Start()
	err = writeOutputs(cfg, s)
	if err != nil {
		return err
	}
	fmt.Printf("Step completed in %s\n", t.Stop())

	return nil
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose mode")
	help := flag.Bool("h", false, "Help message")
	runDir := flag.String("run", "", "Directory with the vernier output files of the run (one file per MPI rank)")
	configDir := flag.String("config", "", "Configuration directory, the run is then <config>/run<run-num>")
	runNum := flag.String("run-num", "", "Run number, used with -config")
	csvPath := flag.String("csv", "", "Path of the summary CSV file to generate")
	fieldName := flag.String("field", string(vernier.FieldSelfPerCall), "Field to summarise (time, cumulative_time, self_time, total_time, num_calls, self_per_call, total_per_call)")
	allFields := flag.Bool("all-fields", false, "Save the summary of all the fields in the CSV file")
	mdPath := flag.String("md", "", "Path of an optional markdown report")
	htmlPath := flag.String("html", "", "Path of an optional HTML report")
	plotPath := flag.String("plot", "", "Path of an optional plot of the summary (.png, .svg or .pdf)")
	workers := flag.Int("j", 0, "Number of rank files parsed concurrently (0 to parse them one after the other)")
	showProgress := flag.Bool("progress", false, "Display the progress while parsing rank files")

	flag.Parse()

	cmdName := filepath.Base(os.Args[0])
	if *help {
		fmt.Printf("%s parses the vernier output files of a run and generates a summary CSV", cmdName)
		fmt.Println("\nUsage:")
		fmt.Printf("\t%s [options] [RUN_PATH [CSV_PATH]]\n", cmdName)
		flag.PrintDefaults()
		os.Exit(0)
	}

	logFile := util.OpenLogFile("vernier", cmdName)
	defer logFile.Close()
	if *verbose {
		nultiWriters := io.MultiWriter(os.Stdout, logFile)
		log.SetOutput(nultiWriters)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg := new(config)
	var err error
	args := flag.Args()
	cfg.runPath, err = resolveRunPath(*runDir, *configDir, *runNum, args)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if *runDir == "" && *configDir == "" && len(args) > 0 {
		args = args[1:]
	}
	cfg.csvPath = *csvPath
	if cfg.csvPath == "" && len(args) > 0 {
		cfg.csvPath = args[0]
	}
	if cfg.csvPath == "" {
		cfg.csvPath = format.DefaultSummaryFilename
	}
	cfg.field, err = vernier.ParseField(*fieldName)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	cfg.allFields = *allFields
	cfg.mdPath = *mdPath
	cfg.htmlPath = *htmlPath
	cfg.plotPath = *plotPath
	cfg.workers = *workers
	if *showProgress {
		cfg.progress = os.Stdout
	}

	err = run(cfg)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
}
