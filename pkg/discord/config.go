package discord

import (
	"github.com/Adirelle/cmdbase/pkg/utils"
)

type (
	Config struct {
		Token utils.Secret `json:"token" yaml:"token" validate:"required"`
		// Prefix is the command prefix of guilds that did not choose their own.
		Prefix string `json:"prefix" yaml:"prefix" validate:"required,max=32"`
	}
)

const DefaultPrefix = "!"

func NewConfig() *Config {
	return &Config{Prefix: DefaultPrefix}
}
