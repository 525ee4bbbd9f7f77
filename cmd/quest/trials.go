package main

import (
	"sync"
	"time"

	adcs "github.com/mtcerio/CubeSatADCS"
	"gonum.org/v1/gonum/mat"
)

type trial struct {
	no  int
	sol adcs.Solution
	cov *mat.SymDense
}

// runTrials estimates the attitude from `trials` independent draws of the sensors, spread over
// `workers` goroutines. It returns the trials ordered by number and the time they took.
func runTrials(estimator *adcs.Estimator, sensors []adcs.Sensor, truth adcs.Quaternion, epoch time.Time, trials, workers int) ([]trial, time.Duration) {
	start := time.Now()
	jobs := make(chan int, trials)
	results := make(chan trial, trials)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs := make([]adcs.Observation, len(sensors))
			for no := range jobs {
				for i, sensor := range sensors {
					obs[i] = sensor.Observe(truth, epoch)
				}
				// Errors are reported in the solution status.
				sol, _ := estimator.Estimate(obs)
				// Nil when the observations cannot bound the error.
				cov, _ := adcs.Covariance(obs)
				results <- trial{no, sol, cov}
			}
		}()
	}
	for no := 0; no < trials; no++ {
		jobs <- no
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]trial, trials)
	for res := range results {
		ordered[res.no] = res
	}
	return ordered, time.Since(start)
}
