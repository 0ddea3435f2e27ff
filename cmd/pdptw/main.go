// Command pdptw solves Pickup-and-Delivery Problem with Time Windows
// instances via the construct -> ILS pipeline. It supports two
// subcommands: "single" solves one instance and prints its route listing,
// "batch" solves every instance in a directory and reports a JSON or CSV
// results table (§6).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/nodewise/pdptw/config"
	"github.com/nodewise/pdptw/construct"
	"github.com/nodewise/pdptw/ils"
	"github.com/nodewise/pdptw/ioformat"
	"github.com/nodewise/pdptw/lns"
	"github.com/nodewise/pdptw/model"
	"github.com/nodewise/pdptw/rng"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "single":
		err = runSingle(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "pdptw:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pdptw single --instance FILE [flags]")
	fmt.Fprintln(os.Stderr, "       pdptw batch --dir DIR [flags]")
}

func shellOptionsFromConfig(cfg *config.Config) ils.Options {
	opts := ils.DefaultOptions()
	opts.MaxIterations = cfg.Solver.MaxIterations
	opts.NoImprovementLimit = cfg.Solver.NoImprovementLimit
	opts.PerturbIntensity = cfg.Solver.PerturbIntensity
	opts.LNS.KMin = cfg.LNS.KMin
	opts.LNS.KMax = cfg.LNS.KMax
	opts.LNS.LAHCLength = cfg.LNS.LAHCLength
	opts.LNS.SAAlpha = cfg.LNS.SAAlpha
	opts.LNS.Adaptive = cfg.LNS.Adaptive
	opts.LNS.LocalSearchEvery = cfg.LNS.LocalSearchEvery
	return opts
}

func runSingle(args []string) error {
	fs := flag.NewFlagSet("single", flag.ExitOnError)
	instancePath := fs.String("instance", "", "path to the instance file")
	method := fs.String("method", "auto", "construction method: auto, clarke-wright, greedy")
	algorithm := fs.String("algorithm", "lahc", "acceptance criterion: lahc, sa")
	timeBudget := fs.Duration("time", 10*time.Second, "wall-clock time budget")
	seed := fs.Int64("seed", 1, "random seed")
	outFormat := fs.String("format", "text", "output format: text, json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *instancePath == "" {
		return fmt.Errorf("--instance is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Solver.Seed = *seed

	inst, err := ioformat.ParseInstance(*instancePath)
	if err != nil {
		return err
	}

	result := solveOne(inst, cfg, method, algorithm, *timeBudget)

	if *outFormat == "json" {
		record := toRecord(inst.Name, result)
		return ioformat.WriteJSON(os.Stdout, []ioformat.ResultRecord{record})
	}
	header := ioformat.SolutionHeader{
		Authors:   "pdptw",
		Date:      time.Now().Format("2006-01-02"),
		Reference: inst.Name,
	}
	if err := ioformat.WriteSolution(os.Stdout, result.Solution, header); err != nil {
		return err
	}
	fmt.Printf("vehicles=%d distance=%.2f feasible=%v runtime=%s\n",
		result.Vehicles, result.Distance, result.Feasible, result.Runtime)

	if !result.Feasible {
		os.Exit(3)
	}
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	dir := fs.String("dir", "", "directory of instance files")
	method := fs.String("method", "auto", "construction method: auto, clarke-wright, greedy")
	algorithm := fs.String("algorithm", "lahc", "acceptance criterion: lahc, sa")
	timeBudget := fs.Duration("time", 10*time.Second, "per-instance wall-clock time budget")
	outFormat := fs.String("format", "csv", "output format: csv, json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("--dir is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		return err
	}

	var records []ioformat.ResultRecord
	allFeasible := true
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(*dir, entry.Name())
		inst, err := ioformat.ParseInstance(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "skipping", path, ":", err)
			continue
		}
		result := solveOne(inst, cfg, method, algorithm, *timeBudget)
		allFeasible = allFeasible && result.Feasible
		records = append(records, toRecord(inst.Name, result))
	}

	var writeErr error
	if *outFormat == "json" {
		writeErr = ioformat.WriteJSON(os.Stdout, records)
	} else {
		writeErr = ioformat.WriteCSV(os.Stdout, records)
	}
	if writeErr != nil {
		return writeErr
	}
	if !allFeasible {
		os.Exit(3)
	}
	return nil
}

func solveOne(inst *model.Instance, cfg *config.Config, method, algorithm *string, budget time.Duration) ils.Result {
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	r := rng.New(cfg.Solver.Seed)

	constructResult := constructWith(inst, r, *method)

	opts := shellOptionsFromConfig(cfg)
	if *algorithm == "sa" {
		opts.LNS.Acceptance = lns.SAAcceptance
	}
	bks, ok := ioformat.BestKnown(inst.Name)
	if ok {
		opts.BestKnown = &bks
	}

	shell := ils.NewShell(opts)
	if cfg.Solver.Trials > 1 {
		return ils.MultiStart(ctx, opts, inst, constructResult.Solution, cfg.Solver.Seed, cfg.Solver.Trials)
	}
	return shell.Run(ctx, inst, constructResult.Solution, r)
}

func constructWith(inst *model.Instance, r *rand.Rand, method string) construct.Result {
	switch method {
	case "clarke-wright":
		return construct.Result{Solution: construct.ClarkeWright(inst), Method: construct.ClarkeWrightMethod}
	case "greedy":
		return construct.Result{Solution: construct.GreedyInsertion(inst, r), Method: construct.GreedyMethod}
	default:
		return construct.Construct(inst, r)
	}
}

func toRecord(name string, res ils.Result) ioformat.ResultRecord {
	return ioformat.ResultRecord{
		Instance:   name,
		Vehicles:   res.Vehicles,
		Distance:   res.Distance,
		Feasible:   res.Feasible,
		GapVsBKS:   res.GapVsBKS,
		Runtime:    res.Runtime,
		Iterations: res.Iterations,
	}
}
