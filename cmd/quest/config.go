package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	adcs "github.com/mtcerio/CubeSatADCS"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

func readSensors() []adcs.Sensor {
	names := viper.GetStringSlice("sensors.names")
	sensors := make([]adcs.Sensor, 0, len(names))
	for _, name := range names {
		key := fmt.Sprintf("sensors.%s.", name)
		var ref adcs.ReferenceModel
		switch kind := strings.ToLower(viper.GetString(key + "type")); kind {
		case "sun":
			ref = adcs.SunModel{}
		case "star":
			ref = adcs.NewStarDirection(viper.GetFloat64(key+"ra"), viper.GetFloat64(key+"dec"))
		case "vector":
			ref = adcs.FixedDirection{viper.GetFloat64(key + "x"), viper.GetFloat64(key + "y"), viper.GetFloat64(key + "z")}
		default:
			log.Fatalf("could not understand type `%s` of sensor `%s`", kind, name)
		}
		sensor, err := adcs.NewSensor(name, viper.GetFloat64(key+"sigma"), ref)
		if err != nil {
			log.Fatalf("sensor `%s`: %s", name, err)
		}
		sensors = append(sensors, sensor)
		log.Printf("[info] added sensor %s", sensor)
	}
	return sensors
}

// readAttitude returns the true attitude from Euler angles in degrees (3-1-3 unless `attitude.sequence` is set).
func readAttitude() adcs.Quaternion {
	sequence := viper.GetString("attitude.sequence")
	if sequence == "" {
		sequence = "313"
	}
	θ1 := adcs.Deg2rad(viper.GetFloat64("attitude.theta1"))
	θ2 := adcs.Deg2rad(viper.GetFloat64("attitude.theta2"))
	θ3 := adcs.Deg2rad(viper.GetFloat64("attitude.theta3"))
	dcm, err := adcs.EulerDCM(sequence, θ1, θ2, θ3)
	if err != nil {
		log.Fatalf("[attitude]: %s", err)
	}
	return adcs.QuaternionFromDCM(dcm)
}

func confReadJDEorTime(key string) (dt time.Time) {
	jde := viper.GetFloat64(key)
	if jde == 0 {
		var perr error
		dt, perr = time.Parse(dateFormat, viper.GetString(key))
		if perr != nil {
			log.Fatalf("could not understand `%s`: %s", key, perr)
		}
	} else {
		dt = julian.JDToTime(jde)
	}
	return
}
