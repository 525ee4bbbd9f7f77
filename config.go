package adcs

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of the conf.toml configuration file.
const ConfigEnv = "ADCS_CONFIG"

// Config holds the configuration of the QUEST estimator.
type Config struct {
	// Tolerance is the convergence threshold of the Newton refinement of the eigenvalue.
	Tolerance float64
	// MaxIterations caps the number of Newton iterations.
	MaxIterations int
	// DerivativeTolerance is the relative threshold under which the derivative of the
	// characteristic equation is considered to be null.
	DerivativeTolerance float64
	// SingularityTolerance is the relative threshold under which the quaternion norm is considered to be null.
	SingularityTolerance float64
	// CollinearityTolerance is the sine of the angle under which two vectors are considered collinear.
	CollinearityTolerance float64
	// SequentialRotations enables Shuster's method of sequential rotations on normalization singularities.
	SequentialRotations bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:             1e-5,
		MaxIterations:         10000,
		DerivativeTolerance:   1e-12,
		SingularityTolerance:  1e-10,
		CollinearityTolerance: 1e-6,
		SequentialRotations:   false,
	}
}

// Validate returns an error if the configuration is not usable.
func (c Config) Validate() error {
	switch {
	case !(c.Tolerance > 0):
		return errors.Errorf("tolerance must be positive (got %g)", c.Tolerance)
	case c.MaxIterations < 1:
		return errors.Errorf("max iterations must be at least one (got %d)", c.MaxIterations)
	case c.DerivativeTolerance < 0 || c.SingularityTolerance < 0 || c.CollinearityTolerance < 0:
		return errors.New("thresholds must not be negative")
	}
	return nil
}

// ReadConfig reads the estimator configuration from the provided section of a viper instance.
// Missing keys keep their default values.
func ReadConfig(v *viper.Viper, section string) (Config, error) {
	conf := DefaultConfig()
	key := func(name string) string {
		if section == "" {
			return name
		}
		return section + "." + name
	}
	if v.IsSet(key("tolerance")) {
		conf.Tolerance = v.GetFloat64(key("tolerance"))
	}
	if v.IsSet(key("max_iterations")) {
		conf.MaxIterations = v.GetInt(key("max_iterations"))
	}
	if v.IsSet(key("derivative_tolerance")) {
		conf.DerivativeTolerance = v.GetFloat64(key("derivative_tolerance"))
	}
	if v.IsSet(key("singularity_tolerance")) {
		conf.SingularityTolerance = v.GetFloat64(key("singularity_tolerance"))
	}
	if v.IsSet(key("collinearity_tolerance")) {
		conf.CollinearityTolerance = v.GetFloat64(key("collinearity_tolerance"))
	}
	conf.SequentialRotations = v.GetBool(key("sequential_rotations"))
	return conf, conf.Validate()
}

// LoadConfig loads the `[estimator]` section of conf.toml in the provided directory.
// If dir is empty, the directory is read from the ADCS_CONFIG environment variable.
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = os.Getenv(ConfigEnv)
		if dir == "" {
			return Config{}, errors.Errorf("environment variable `%s` is missing or empty", ConfigEnv)
		}
	}
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "%s/conf.toml", dir)
	}
	return ReadConfig(v, "estimator")
}
