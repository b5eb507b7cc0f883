package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"

	"github.com/smartbch/entryguard/rewrite"
	"github.com/smartbch/entryguard/types"
)

// fileConfig is the TOML layout read by --config.
type fileConfig struct {
	Entrypoint         string `toml:",omitempty"`
	Profile            string `toml:",omitempty"`
	AllowEmptyCalldata bool
	Verbosity          string `toml:",omitempty"`
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

func loadConfig(file string, cfg *fileConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig layers the config file and then the command line flags over
// rewrite.DefaultConfig.
func makeConfig(ctx *cli.Context) (rewrite.Config, string, error) {
	cfg := rewrite.DefaultConfig()
	fc := fileConfig{Verbosity: "info"}
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &fc); err != nil {
			return cfg, "", err
		}
	}
	if ctx.IsSet(entrypointFlag.Name) {
		fc.Entrypoint = ctx.String(entrypointFlag.Name)
	}
	if ctx.IsSet(profileFlag.Name) {
		fc.Profile = ctx.String(profileFlag.Name)
	}
	if ctx.IsSet(bypassFlag.Name) {
		fc.AllowEmptyCalldata = ctx.Bool(bypassFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		fc.Verbosity = ctx.String(verbosityFlag.Name)
	}

	if fc.Entrypoint != "" {
		bz, err := types.FromHex(strings.TrimSpace(fc.Entrypoint))
		if err != nil {
			return cfg, "", fmt.Errorf("entrypoint: %w", err)
		}
		if cfg.Entrypoint, err = rewrite.ParseEntrypoint(bz); err != nil {
			return cfg, "", err
		}
	}
	profile, err := rewrite.ParseProfile(fc.Profile)
	if err != nil {
		return cfg, "", err
	}
	cfg.Profile = profile
	cfg.AllowEmptyCalldata = fc.AllowEmptyCalldata
	return cfg, fc.Verbosity, nil
}
