// lightchaind is the command-line entry point: wires a parsed Config into
// a genesis-seeded Processor and hands it to a Sync Driver, grounded on
// the teacher's cmd/geth/main.go (makeCLIApp/main/geth shape).
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/urfave/cli.v1"

	"github.com/eth-classic/lightchain/config"
	"github.com/eth-classic/lightchain/core/chain"
	"github.com/eth-classic/lightchain/core/genesis"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/logger"
	"github.com/eth-classic/lightchain/logger/glog"
	"github.com/eth-classic/lightchain/sync"
)

// Version is the application revision identifier, set with the linker
// as in: go build -ldflags "-X main.Version=..."
var Version = "source"

func makeCLIApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = Version
	app.Usage = "a light-client validator for an Ethereum-Classic-compatible chain"
	app.Flags = config.Flags
	app.Action = run
	return app
}

func run(ctx *cli.Context) error {
	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}
	logger.SetVerbosity(cfg.Verbosity)

	db := state.NewDatabase()
	genesisBlock, err := genesis.Build(db, genesis.DefaultAllocation)
	if err != nil {
		return fmt.Errorf("building genesis block: %v", err)
	}

	processor := chain.NewProcessor(db, 2)
	processor.PutGenesis(genesisBlock.Header)
	glog.V(logger.Info).Infof("genesis block %x credited, listening on %s", genesisBlock.Hash(), cfg.ListenAddr)

	in := make(chan sync.Message)
	out := make(chan sync.Message)
	driver := sync.NewDriver(in, out, processor)

	return driver.Run(context.Background())
}

func main() {
	app := makeCLIApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
