package logging

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/level"
	"github.com/thejerf/suture/v4"
)

type ConsoleConfig struct {
	Level Level `json:"level" yaml:"level"`
}

var _ factory = (*ConsoleConfig)(nil)

func (c ConsoleConfig) CreateLogging() (log.Handler, log.Level, suture.Service) {
	return level.New(cli.New(os.Stderr), log.Level(c.Level)), log.Level(c.Level), nil
}
