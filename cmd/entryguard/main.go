package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli/v2"

	"github.com/smartbch/entryguard/evmcheck"
	"github.com/smartbch/entryguard/rewrite"
	"github.com/smartbch/entryguard/testcase"
	"github.com/smartbch/entryguard/types"
)

var (
	entrypointFlag = &cli.StringFlag{
		Name:    "entrypoint",
		Aliases: []string{"e"},
		Usage: "20-byte address allowed to call the rewritten contract",
	}
	profileFlag = &cli.StringFlag{
		Name:  "profile",
		Usage: "constructor layout: strict or solc",
		Value: string(rewrite.ProfileStrict),
	}
	bypassFlag = &cli.BoolFlag{
		Name:  "bypass-empty-calldata",
		Usage: "let calls without calldata stop successfully instead of reverting",
	}
	reportFlag = &cli.StringFlag{
		Name:  "report",
		Usage: "write a msgpack rewrite report to `FILE`",
	}
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	artifactFlag = &cli.StringFlag{
		Name:  "artifact",
		Usage: "read the bytecode from a JSON compiler artifact",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: debug, info, error or none",
		Value: "info",
	}
)

var errUsage = errors.New("expected exactly one bytecode hex argument")

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "entryguard",
		Usage:     "restrict a contract to a single caller by rewriting its deployment bytecode",
		ArgsUsage: "<bytecode-hex>",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			entrypointFlag,
			profileFlag,
			bypassFlag,
			reportFlag,
			configFileFlag,
			artifactFlag,
			verbosityFlag,
		},
		Action: rewriteAction,
		Commands: []*cli.Command{
			{
				Name:      "disasm",
				Usage:     "print a disassembly listing",
				ArgsUsage: "<bytecode-hex>",
				Action:    disasmAction,
			},
			{
				Name:      "verify",
				Usage:     "rewrite and compare the original and rewritten contracts in an in-memory EVM",
				ArgsUsage: "<bytecode-hex>",
				Action:    verifyAction,
			},
			{
				Name:      "cases",
				Usage:     "run a case file or every .txt case file in a directory",
				ArgsUsage: "<dir|file>",
				Action:    casesAction,
			},
		},
	}
}

func makeLogger(verbosity string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	option, err := log.AllowLevel(verbosity)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, option), nil
}

// setup resolves the configuration, logger and input bytecode shared by the
// rewriting commands.
func setup(ctx *cli.Context) (rewrite.Config, log.Logger, types.Bytes, error) {
	cfg, verbosity, err := makeConfig(ctx)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := makeLogger(verbosity)
	if err != nil {
		return cfg, nil, nil, err
	}
	code, err := inputCode(ctx)
	return cfg, logger, code, err
}

func inputCode(ctx *cli.Context) (types.Bytes, error) {
	if file := ctx.String(artifactFlag.Name); file != "" {
		if ctx.NArg() != 0 {
			return nil, errors.New("--artifact and a bytecode argument are mutually exclusive")
		}
		return readArtifactFile(file)
	}
	if ctx.NArg() != 1 {
		return nil, errUsage
	}
	return types.FromHex(strings.TrimSpace(ctx.Args().First()))
}

func rewriteAction(ctx *cli.Context) error {
	cfg, logger, code, err := setup(ctx)
	if err != nil {
		return err
	}
	res, err := rewrite.New(cfg, logger).Rewrite(code)
	if err != nil {
		return err
	}
	if file := ctx.String(reportFlag.Name); file != "" {
		bz, err := res.Report.MarshalMsg(nil)
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(file, bz, 0644); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(ctx.App.Writer, res.Code.Hex())
	return err
}

func disasmAction(ctx *cli.Context) error {
	code, err := inputCode(ctx)
	if err != nil {
		return err
	}
	listing, err := types.Disassemble(code)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.App.Writer, listing)
	return err
}

func verifyAction(ctx *cli.Context) error {
	cfg, logger, code, err := setup(ctx)
	if err != nil {
		return err
	}
	res, err := rewrite.New(cfg, logger).Rewrite(code)
	if err != nil {
		return err
	}
	checker := evmcheck.NewChecker(cfg.Entrypoint, cfg.AllowEmptyCalldata, logger)
	mismatches, err := checker.Compare(code, res.Code, checker.DefaultProbes())
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		fmt.Fprintln(ctx.App.ErrWriter, m.String())
	}
	if len(mismatches) != 0 {
		return fmt.Errorf("%d of %d probes disagree", len(mismatches), len(checker.DefaultProbes()))
	}
	fmt.Fprintln(ctx.App.Writer, "ok")
	return nil
}

func casesAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a case file or directory")
	}
	_, verbosity, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	logger, err := makeLogger(verbosity)
	if err != nil {
		return err
	}
	runner := testcase.NewRunner(logger)
	path := ctx.Args().First()
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		err = testcase.RunOneDir(path, runner.Run)
	} else {
		err = testcase.RunOneFile(path, runner.Run)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "ok")
	return nil
}

// describe formats err for stderr. Broken internal invariants are reported
// separately from bad input.
func describe(err error) (string, int) {
	if types.IsInputError(err) {
		return "error: " + err.Error(), 1
	}
	return "internal error: " + strings.TrimSpace(err.Error()), 2
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		msg, code := describe(err)
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(code)
	}
}
