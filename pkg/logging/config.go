package logging

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/multi"
	"github.com/thejerf/suture/v4"
)

type (
	Config struct {
		Console ConsoleConfig `json:"console" yaml:"console"`
		File    *FileConfig   `json:"file,omitempty" yaml:"file,omitempty"`
	}

	// Level is a log.Level that reads and writes as its name.
	Level log.Level

	factory interface {
		CreateLogging() (log.Handler, log.Level, suture.Service)
	}
)

var _ factory = (*Config)(nil)

func NewConfig(baseDir string) *Config {
	return &Config{
		Console: ConsoleConfig{Level: Level(log.WarnLevel)},
		File:    NewFileConfig(baseDir),
	}
}

// CreateLogging returns the handler to install, the lowest level it accepts, and
// the service that must run for file logging, if any.
func (c *Config) CreateLogging() (log.Handler, log.Level, suture.Service) {
	handler, minLevel, svc := c.Console.CreateLogging()

	if c.File != nil && !c.File.Disabled {
		fileHandler, fileLevel, fileSvc := c.File.CreateLogging()
		handler = multi.New(handler, fileHandler)
		if fileLevel < minLevel {
			minLevel = fileLevel
		}
		svc = fileSvc
	}

	return handler, minLevel, svc
}

// Setup installs the handlers on the default logger.
func (c *Config) Setup() suture.Service {
	handler, level, svc := c.CreateLogging()
	log.SetHandler(handler)
	log.SetLevel(level)
	return svc
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(log.Level(l).String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	level, err := log.ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = Level(level)
	return nil
}
