package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"toruslife/src/logger"
	"toruslife/src/universe"
	"toruslife/src/view"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	seed        int64
	template    string
	maxSteps    int
	logFile     string
}

//exit codes
const (
	exitOK    = 0
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

//run returns the process exit code so that deferred cleanups happen before exiting
func run() int {
	eo, uo, err := initOptions()
	if err != nil {
		flaggy.ShowHelp(err.Error())
		return exitUsage
	}

	logOut, closeLog, err := openLog(eo)
	if err != nil {
		flaggy.ShowHelp(err.Error())
		return exitUsage
	}
	defer closeLog()
	log := logger.New(logOut)
	uo.Logger = log
	if !eo.interactive {
		uo.MaxSteps = eo.maxSteps
	}

	u, err := universe.NewGame(uo)
	if err != nil {
		log.Error("new game: %v", err)
		flaggy.ShowHelp(err.Error())
		return exitUsage
	}
	defer u.Close()
	log.Info("board %dx%d, interval %v, max steps %d", uo.Rows, uo.Cols, uo.Interval, uo.MaxSteps)

	if eo.randomData {
		err = u.SettleWithRandomData(eo.seed)
	} else {
		err = u.SettleTemplate(eo.template)
	}
	if err != nil {
		log.Error("settle: %v", err)
		flaggy.ShowHelp(err.Error())
		return exitUsage
	}

	if eo.interactive {
		v := view.NewViewTerminal(eo.seed, log)
		v.Register(u)
		v.Start()
	} else {
		v := view.NewConsoleOut(os.Stdout, eo.maxSteps)
		v.Register(u)
		v.Start()
	}
	return exitOK
}

func initOptions() (eo *EnvOptions, uo *universe.Options, err error) {

	o := universe.DefaultOptions
	uo = &o
	eo = &EnvOptions{template: "sample", maxSteps: 1000, seed: time.Now().UnixNano()}

	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Rows, "r", "rows", "Rows of a simulation field")
	flaggy.Int(&uo.Cols, "c", "cols", "Columns of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Stop the headless simulation after maxSteps, 0 for no limit")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "w", "random", "Settle with random data")
	flaggy.Int64(&eo.seed, "", "seed", "Seed of the random data")
	flaggy.String(&eo.template, "t", "template", "Template to settle with ["+strings.Join(universe.BuiltinTemplateNames(), "|")+"]")
	flaggy.String(&eo.logFile, "l", "log", "Log file, interactive mode logs nowhere without it")

	flaggy.Parse()

	if uo.Rows <= 1 || uo.Cols <= 1 {
		return nil, nil, errors.New("rows and cols must be bigger than 1")
	}

	return
}

func openLog(eo *EnvOptions) (io.Writer, func(), error) {
	if eo.logFile == "" {
		if eo.interactive {
			return io.Discard, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(eo.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
