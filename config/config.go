package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	MsgFailedToReadConfiguration = "failed to read configuration"
	MsgFailedToLoadDotEnv        = "failed to load .env file"
	MsgInvalidLocation           = "invalid LOCATION time zone"
)

var ErrFailedToReadConfiguration = errors.New(MsgFailedToReadConfiguration)

type Configuration struct {
	APIBaseURL        string         `envconfig:"API_BASE_URL" default:"http://localhost:3000"`
	APITimeoutSeconds uint           `envconfig:"API_TIMEOUT_SECONDS" default:"30"`
	LogLevel          zerolog.Level  `envconfig:"LOG_LEVEL" default:"1"`
	Development       bool           `envconfig:"DEVELOPMENT" default:"false"`
	Proxy             string         `envconfig:"PROXY" default:""`
	CallLogSize       int            `envconfig:"CALL_LOG_SIZE" default:"100"`
	Location          string         `envconfig:"LOCATION" default:"Local"`
	ApplicationName   string         `envconfig:"APPLICATION_NAME" default:"infirmary-client"`
	DateLocation      *time.Location `ignored:"true"`
}

// APITimeout is the per-call timeout applied by the gateway.
func (c Configuration) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

var Settings Configuration

// ReadConfiguration loads an optional .env file from the working directory and
// then processes the environment.
func ReadConfiguration() (Configuration, error) {
	return ReadConfigurationFrom(".env")
}

func ReadConfigurationFrom(dotEnvFiles ...string) (Configuration, error) {
	var config Configuration

	existing := make([]string, 0, len(dotEnvFiles))
	for _, file := range dotEnvFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			err = errors.Wrap(err, MsgFailedToLoadDotEnv)
			log.Error().Err(err).Msg(MsgFailedToLoadDotEnv)
			return config, err
		}
	}

	err := envconfig.Process("", &config)
	if err != nil {
		err = errors.Wrap(err, MsgFailedToReadConfiguration)
		log.Error().Err(err).Msgf("%s\n", ErrFailedToReadConfiguration)
		return config, err
	}

	location, err := time.LoadLocation(config.Location)
	if err != nil {
		err = errors.Wrapf(err, "%s: %s", MsgInvalidLocation, config.Location)
		log.Error().Err(err).Msg(MsgInvalidLocation)
		return config, err
	}
	config.DateLocation = location

	return config, nil
}
