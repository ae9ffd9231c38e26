package main

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"labrotation/internal/config"
	"labrotation/internal/csvio"
	"labrotation/internal/logger"
	"labrotation/internal/scheduler"
	"labrotation/pkg/model"
)

var (
	cfgPath string
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "labrotation",
	Short: "Lab rotation scheduling engine",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses the config value, or the clock)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("labrotation")

	labs, err := csvio.LoadLabs(cfg.LabsFile, cfg.DelimiterRune())
	if err != nil {
		return err
	}
	rooms, err := csvio.LoadRooms(cfg.RoomsFile, cfg.DelimiterRune())
	if err != nil {
		return err
	}
	catalog := &scheduler.Catalog{Labs: labs, Rooms: rooms, TotalTrainees: cfg.TotalTrainees}

	if seed == 0 {
		seed = cfg.Seed
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	start := time.Now()
	result, err := scheduler.New(cfg.Scheduler(), log, rng).Run(catalog)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	valid, msg := scheduler.Validate(result.Sessions, cfg.TotalTrainees)
	if valid {
		fmt.Println("Passed all tests")
	} else {
		fmt.Println("Invalid schedule:")
	}
	fmt.Println(msg)

	printReport(result)
	fmt.Printf("Sessions: %d\n", len(result.Sessions))
	fmt.Printf("Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)

	outPath, err := csvio.ExportSessions(result.Sessions, cfg.ExportFile)
	if err != nil {
		return err
	}
	fmt.Println("Exported output to: " + outPath)
	return nil
}

func printReport(result *scheduler.Result) {
	r := result.Report
	fmt.Printf("Mode: %s\n", r.Mode)
	fmt.Printf("Completion: mean %.1f / %d labs, min %d, max %d\n", r.Mean, r.LabCount, r.Min, r.Max)
	if r.Success {
		fmt.Println("Run succeeded")
	} else {
		fmt.Println("Run ended with partial success")
	}
	ids := make([]int, 0, len(r.Outcomes))
	for id := range r.Outcomes {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		outcome := r.Outcomes[model.LabID(id)]
		fmt.Printf("  lab %d: %s, %d sessions, %d covered, %d uncovered\n",
			id, outcome.Strategy, outcome.Sessions, outcome.Covered, outcome.Uncovered)
	}
	if len(r.GroupCoverage) > 0 {
		keys := make([]string, 0, len(r.GroupCoverage))
		for k := range r.GroupCoverage {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			mark := "MISSING"
			if r.GroupCoverage[k] {
				mark = "ok"
			}
			fmt.Printf("  pair %s: %s\n", k, mark)
		}
	}
}
