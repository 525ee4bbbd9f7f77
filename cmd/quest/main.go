package main

import (
	"flag"
	"log"
	"math"
	"os"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	adcs "github.com/mtcerio/CubeSatADCS"
	"github.com/spf13/viper"
)

// Scenario constants
const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	debug    = flag.Bool("debug", false, "verbose debug")
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "QUEST scenario TOML file")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}

	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	conf, err := adcs.ReadConfig(viper.GetViper(), "estimator")
	if err != nil {
		log.Fatalf("[estimator]: %s", err)
	}
	var logger kitlog.Logger
	if *debug {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
		logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "scenario", scenario)
	}
	estimator, err := adcs.NewEstimator(conf, logger)
	if err != nil {
		log.Fatalf("could not create estimator: %s", err)
	}

	epoch := confReadJDEorTime("mission.epoch")
	trials := viper.GetInt("mission.trials")
	if trials < 1 {
		trials = 1
	}
	workers := viper.GetInt("mission.workers")
	if workers < 1 {
		workers = 1
	}
	truth := readAttitude()
	sensors := readSensors()
	log.Printf("[info] true attitude %s, %d sensors, %d trials", truth, len(sensors), trials)

	outPath := viper.GetString("mission.output")
	if outPath == "" {
		outPath = scenario + ".csv"
	}
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("could not create %s: %s", outPath, err)
	}
	defer f.Close()
	report, err := adcs.NewSolutionWriter(f)
	if err != nil {
		log.Fatalf("could not write %s: %s", outPath, err)
	}

	results, elapsed := runTrials(estimator, sensors, truth, epoch, trials, workers)
	failed := 0
	var maxErr, maxSigma3 float64
	for _, res := range results {
		if res.cov != nil {
			for i := 0; i < 3; i++ {
				maxSigma3 = math.Max(maxSigma3, 3*math.Sqrt(res.cov.At(i, i)))
			}
		}
		if res.sol.Status != adcs.Converged {
			failed++
		} else if e := res.sol.Q.AngleTo(truth); e > maxErr {
			maxErr = e
		}
		if err := report.Write(res.no, epoch, res.sol, truth, res.cov); err != nil {
			log.Fatalf("could not write %s: %s", outPath, err)
		}
	}
	if err := report.Flush(); err != nil {
		log.Fatalf("could not write %s: %s", outPath, err)
	}
	log.Printf("[info] %d trials (%d failed) in %s; max error %.6f deg (max 3σ %.6f deg); saved to %s", trials, failed, elapsed, adcs.Rad2deg(maxErr), adcs.Rad2deg(maxSigma3), outPath)
}
