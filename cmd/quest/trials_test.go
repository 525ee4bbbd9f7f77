package main

import (
	"testing"
	"time"

	adcs "github.com/mtcerio/CubeSatADCS"
)

func TestRunTrials(t *testing.T) {
	estimator, err := adcs.NewEstimator(adcs.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var sensors []adcs.Sensor
	for i, ref := range []adcs.ReferenceModel{
		adcs.FixedDirection{1, 0, 0},
		adcs.NewStarDirection(95.988, -52.696),
		adcs.FixedDirection{0, 0.3, 1},
	} {
		sensor, err := adcs.NewSensor(string(rune('a'+i)), 1e-3, ref)
		if err != nil {
			t.Fatal(err)
		}
		sensors = append(sensors, sensor)
	}
	dcm, err := adcs.EulerDCM("321", adcs.Deg2rad(10), adcs.Deg2rad(20), adcs.Deg2rad(30))
	if err != nil {
		t.Fatal(err)
	}
	truth := adcs.QuaternionFromDCM(dcm)
	epoch := time.Date(2019, 3, 20, 21, 58, 0, 0, time.UTC)

	const trials = 20
	results, elapsed := runTrials(estimator, sensors, truth, epoch, trials, 3)
	if len(results) != trials {
		t.Fatalf("%d results", len(results))
	}
	if elapsed <= 0 {
		t.Fatalf("elapsed = %s", elapsed)
	}
	for i, res := range results {
		if res.no != i {
			t.Fatalf("result %d is trial %d", i, res.no)
		}
		if res.sol.Status != adcs.Converged {
			t.Fatalf("trial %d: %s", i, res.sol)
		}
		if e := res.sol.Q.AngleTo(truth); e > 1e-2 {
			t.Fatalf("trial %d: error of %f rad", i, e)
		}
		if res.cov == nil {
			t.Fatalf("trial %d: no covariance", i)
		}
	}
}
