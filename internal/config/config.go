package config

import (
	"gopkg.in/yaml.v3"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Gdb      string `yaml:"gdb,omitempty"`      // debugger binary
	Args     string `yaml:"args,omitempty"`     // extra debugger arguments
	Annotate int    `yaml:"annotate,omitempty"` // annotation level
	Listen   string `yaml:"listen,omitempty"`   // websocket bridge address, empty runs the stdin repl
	Tty      string `yaml:"tty,omitempty"`      // inferior terminal, sent with "tty" at start
	Watch    *bool  `yaml:"watch,omitempty"`    // watch resolved source files
}

func DefaultConfig() Config {
	watch := true
	return Config{ Gdb: "gdb", Args: "-nx -q", Annotate: 2, Watch: &watch }
}

// GetConfig reads GDBFRONT_CONF (or config.yaml) over the defaults.
// A missing or broken file leaves the defaults in place.
func GetConfig() Config {
	conf := DefaultConfig()

	conffilename, exists := os.LookupEnv("GDBFRONT_CONF")
	if !exists { conffilename = "config.yaml" }

	data, err := os.ReadFile(conffilename)
	if err != nil { return conf }

	var yamlConfig Config
	err = yaml.Unmarshal(data, &yamlConfig)
	if err != nil { return conf }

	if yamlConfig.Gdb != "" { conf.Gdb = yamlConfig.Gdb }
	if yamlConfig.Args != "" { conf.Args = yamlConfig.Args }
	if yamlConfig.Annotate != 0 { conf.Annotate = yamlConfig.Annotate }
	if yamlConfig.Listen != "" { conf.Listen = yamlConfig.Listen }
	if yamlConfig.Tty != "" { conf.Tty = yamlConfig.Tty }
	if yamlConfig.Watch != nil { conf.Watch = yamlConfig.Watch }

	return conf
}

func (c Config) WatchSources() bool {
	return c.Watch == nil || *c.Watch
}

// GdbArgs builds the debugger argument list, annotation level first.
func (c Config) GdbArgs(program ...string) []string {
	level := c.Annotate
	if level <= 0 { level = 2 }
	args := []string{"--annotate=" + strconv.Itoa(level)}
	args = append(args, strings.Fields(c.Args)...)
	return append(args, program...)
}
