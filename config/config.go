// Package config declares the CLI surface for lightchaind: one flag per
// configuration field spec.md's External Interfaces section enumerates,
// grounded on the teacher's cmd/geth/flags.go flag-struct style.
package config

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"
)

var (
	ListenAddrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "Listen address (host:port)",
		Value: "0.0.0.0:60606",
	}
	PublicAddrFlag = cli.StringFlag{
		Name:  "nat-addr",
		Usage: "Advertised public address, if different from --addr",
	}
	NetworkIDFlag = cli.IntFlag{
		Name:  "networkid",
		Usage: "Network identifier",
		Value: 1,
	}
	BootstrapFlag = cli.StringSliceFlag{
		Name:  "bootnode",
		Usage: "Bootstrap peer enode URL (repeatable)",
	}
	PingIntervalFlag = cli.IntFlag{
		Name:  "ping-interval",
		Usage: "DevP2P ping interval, in seconds",
		Value: 15,
	}
	PingTimeoutFlag = cli.IntFlag{
		Name:  "ping-timeout",
		Usage: "DevP2P ping timeout, in seconds",
		Value: 30,
	}
	MaxPeersFlag = cli.IntFlag{
		Name:  "maxpeers",
		Usage: "Optimal peer count",
		Value: 25,
	}
	ReconnectFractionFlag = cli.Float64Flag{
		Name:  "reconnect-fraction",
		Usage: "Fraction of the optimal peer count to hold in reserve for reconnects",
		Value: 0.2,
	}
	NoDiscoveryFlag = cli.BoolFlag{
		Name:  "nodiscover",
		Usage: "Disable DevP2P peer discovery",
	}
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Log verbosity (0=error, 5=detail)",
		Value: 2,
	}
)

// Flags is the full flag set main.go registers on the cli.App.
var Flags = []cli.Flag{
	ListenAddrFlag,
	PublicAddrFlag,
	NetworkIDFlag,
	BootstrapFlag,
	PingIntervalFlag,
	PingTimeoutFlag,
	MaxPeersFlag,
	ReconnectFractionFlag,
	NoDiscoveryFlag,
	VerbosityFlag,
}

// Config is the parsed, validated form of the flags above, the shape
// the rest of the daemon actually consumes.
type Config struct {
	ListenAddr        string
	PublicAddr        string
	NetworkID         uint64
	Bootstrap         []string
	PingInterval      int
	PingTimeout       int
	MaxPeers          int
	ReconnectFraction float64
	NoDiscovery       bool
	Verbosity         int
}

// FromContext reads a Config out of a parsed cli.Context.
func FromContext(ctx *cli.Context) (*Config, error) {
	c := &Config{
		ListenAddr:        ctx.String(ListenAddrFlag.Name),
		PublicAddr:        ctx.String(PublicAddrFlag.Name),
		NetworkID:         uint64(ctx.Int(NetworkIDFlag.Name)),
		Bootstrap:         ctx.StringSlice(BootstrapFlag.Name),
		PingInterval:      ctx.Int(PingIntervalFlag.Name),
		PingTimeout:       ctx.Int(PingTimeoutFlag.Name),
		MaxPeers:          ctx.Int(MaxPeersFlag.Name),
		ReconnectFraction: ctx.Float64(ReconnectFractionFlag.Name),
		NoDiscovery:       ctx.Bool(NoDiscoveryFlag.Name),
		Verbosity:         ctx.Int(VerbosityFlag.Name),
	}
	if c.ListenAddr == "" {
		return nil, fmt.Errorf("config: --%s must not be empty", ListenAddrFlag.Name)
	}
	if c.MaxPeers <= 0 {
		return nil, fmt.Errorf("config: --%s must be positive", MaxPeersFlag.Name)
	}
	return c, nil
}
