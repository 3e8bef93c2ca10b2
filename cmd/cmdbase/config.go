package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Adirelle/cmdbase/pkg/discord"
	"github.com/Adirelle/cmdbase/pkg/logging"
	"github.com/Adirelle/cmdbase/pkg/store"
	"github.com/Adirelle/cmdbase/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFilename = "cmdbase.json"
	EnvPrefix      = "CMDBASE"
)

var ConfigFilenames = []string{ConfigFilename, "cmdbase.yaml", "cmdbase.yml"}

type (
	Config struct {
		Path     string          `json:"-" yaml:"-"`
		Discord  *discord.Config `json:"discord" yaml:"discord" validate:"required"`
		Database *store.Config   `json:"database" yaml:"database" validate:"required"`
		Logging  *logging.Config `json:"logging" yaml:"logging" validate:"required"`
	}

	// Environment holds the settings that can be overridden by CMDBASE_* variables.
	Environment struct {
		Token       utils.Secret `envconfig:"TOKEN"`
		Prefix      string       `envconfig:"PREFIX"`
		DatabaseURL string       `envconfig:"DATABASE_URL"`
		LogLevel    string       `envconfig:"LOG_LEVEL"`
	}
)

func ConfigSearchPath() []string {
	paths := os.Args[1:]
	workDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, workDir)
	}
	return append(paths, filepath.Dir(os.Args[0]))
}

func FindConfigFile(paths []string) string {
	for _, path := range paths {
		stat, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !stat.IsDir() {
			return path
		}
		for _, name := range ConfigFilenames {
			candidate := filepath.Join(path, name)
			if _, err = os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	if len(paths) > 0 {
		if stat, err := os.Stat(paths[0]); err == nil && stat.IsDir() {
			return filepath.Join(paths[0], ConfigFilename)
		}
		return paths[0]
	}
	return ConfigFilename
}

func NewConfig(path string) *Config {
	return &Config{
		Path:     path,
		Discord:  discord.NewConfig(),
		Database: store.NewConfig(),
		Logging:  logging.NewConfig(filepath.Dir(path)),
	}
}

// LoadConfig reads the file, writing the defaults first if it is missing, then
// applies the environment and validates the result.
func LoadConfig(path string) (c *Config, err error) {
	c = NewConfig(path)

	err = c.Read()
	if errors.Is(err, fs.ErrNotExist) {
		err = c.Write()
	}
	if err != nil {
		return
	}

	if err = c.ApplyEnvironment(); err != nil {
		return
	}
	err = validator.New().Struct(c)

	return
}

func (c *Config) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(c.Path))
	return ext == ".yaml" || ext == ".yml"
}

func (c *Config) Read() error {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if c.isYAML() {
		return yaml.Unmarshal(content, c)
	}
	return json.Unmarshal(content, c)
}

func (c *Config) Write() (err error) {
	var content []byte
	if c.isYAML() {
		content, err = yaml.Marshal(c)
	} else {
		content, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, content, os.FileMode(0o600))
}

// ApplyEnvironment loads the .env file next to the configuration, if any, then the CMDBASE_* variables.
func (c *Config) ApplyEnvironment() error {
	envFile := filepath.Join(filepath.Dir(c.Path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var env Environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}
	if !env.Token.IsZero() {
		c.Discord.Token = env.Token
	}
	if env.Prefix != "" {
		c.Discord.Prefix = env.Prefix
	}
	if env.DatabaseURL != "" {
		c.Database.URL = env.DatabaseURL
	}
	if env.LogLevel != "" {
		return c.Logging.Console.Level.UnmarshalText([]byte(env.LogLevel))
	}
	return nil
}
