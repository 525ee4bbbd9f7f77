package adcs

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestNewSensor(t *testing.T) {
	for _, σ := range []float64{0, -1e-3} {
		if _, err := NewSensor("bad", σ, SunModel{}); err == nil {
			t.Fatalf("σ=%g accepted", σ)
		}
	}
	s, err := NewSensor("css", 1e-2, SunModel{})
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(s.Weight(), 1e4, 1e-8) {
		t.Fatalf("weight = %f", s.Weight())
	}
}

func TestSensorObserve(t *testing.T) {
	epoch := time.Date(2019, 3, 20, 21, 58, 0, 0, time.UTC)
	truth := QuaternionFromDCM(R3R1R3(Deg2rad(30), Deg2rad(45), Deg2rad(60)))
	σ := 1e-5
	var sensors []Sensor
	for _, def := range []struct {
		name string
		ref  ReferenceModel
	}{
		{"sun", SunModel{}},
		{"polaris", NewStarDirection(37.954, 89.264)},
		{"canopus", NewStarDirection(95.988, -52.696)},
	} {
		s, err := NewSensor(def.name, σ, def.ref)
		if err != nil {
			t.Fatal(err)
		}
		sensors = append(sensors, s)
	}
	obs := make([]Observation, len(sensors))
	for i, s := range sensors {
		obs[i] = s.Observe(truth, epoch)
		if obs[i].Name != s.Name || obs[i].Weight != s.Weight() {
			t.Fatalf("unexpected observation %s", obs[i])
		}
		if !scalar.EqualWithinAbs(norm(obs[i].Body), 1, ε) {
			t.Fatalf("%s: body vector is not normalized", s)
		}
		exp := MxV33(truth.DCM(), obs[i].Reference)
		if !floats.EqualApprox(obs[i].Body, exp, 20*σ) {
			t.Fatalf("%s: noise too large: %+v vs. %+v", s, obs[i].Body, exp)
		}
	}
	q, err := QUEST(obs, 0)
	if err != nil {
		t.Fatal(err)
	}
	if e := q.AngleTo(truth); e > 1e-3 {
		t.Fatalf("error of %f rad", e)
	}
}
