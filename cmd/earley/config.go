package main

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// settings are flag defaults loaded from YAML file given by --config flag.
type settings struct {
	Compile struct {
		Out       string `yaml:"out"`
		Export    string `yaml:"export"`
		Backend   string `yaml:"backend"`
		Package   string `yaml:"package"`
		NoActions bool   `yaml:"no-actions"`
		Quiet     bool   `yaml:"quiet"`
	} `yaml:"compile"`

	Test struct {
		Start     string `yaml:"start"`
		Quiet     bool   `yaml:"quiet"`
		NoActions bool   `yaml:"no-actions"`
	} `yaml:"test"`

	Unparse struct {
		Start string `yaml:"start"`
		Count int    `yaml:"count"`
		Depth *int   `yaml:"depth"`
		Seed  int64  `yaml:"seed"`
	} `yaml:"unparse"`
}

// configPath finds --config flag value before the command line is parsed.
func configPath(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return arg[len("--config="):]
		}
	}
	return ""
}

func loadSettings(path string) (*settings, error) {
	s := &settings{}
	if path == "" {
		return s, nil
	}

	content, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}
	e = yaml.Unmarshal(content, s)
	if e != nil {
		return nil, e
	}
	return s, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func boolDefault(value bool) string {
	return strconv.FormatBool(value)
}

func intDefault(value, def int) string {
	if value == 0 {
		value = def
	}
	return strconv.Itoa(value)
}
