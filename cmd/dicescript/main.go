// Package main provides the dicescript command, which loads a directory of Lua
// scripts into a sandbox with the engine.dice module and calls one hook.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestat/internal/cli"
	"github.com/cory-johannsen/dicestat/internal/config"
	"github.com/cory-johannsen/dicestat/internal/dice"
	"github.com/cory-johannsen/dicestat/internal/observability"
	"github.com/cory-johannsen/dicestat/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	scriptDir := flag.String("scripts", "", "directory of *.lua files; overrides scripting.script_dir")
	hook := flag.String("hook", "main", "global Lua function to call after loading")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	dir := cfg.Scripting.ScriptDir
	if *scriptDir != "" {
		dir = *scriptDir
	}

	roller := dice.NewLoggedRoller(cli.SourceFor(cfg.Dice), logger)
	mgr := scripting.NewManager(roller, logger, cfg.Dice.MaxOutcomes)
	defer mgr.Close()

	if err := mgr.Load("main", dir, cfg.Scripting.InstructionLimit); err != nil {
		logger.Fatal("loading scripts", zap.Error(err))
	}

	ret, err := mgr.Call("main", *hook, toLuaArgs(flag.Args())...)
	if err != nil {
		logger.Error("running script", zap.String("hook", *hook), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	if ret != lua.LNil {
		fmt.Fprintln(os.Stdout, ret.String())
	}

	logger.Debug("script finished",
		zap.String("dir", dir),
		zap.String("hook", *hook),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func toLuaArgs(args []string) []lua.LValue {
	out := make([]lua.LValue, len(args))
	for i, a := range args {
		out[i] = lua.LString(a)
	}
	return out
}
