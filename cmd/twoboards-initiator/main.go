package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"os"
	"syscall"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/env"
	"github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/input"
	"github.com/moe2code/twoboards.go/pkg/node"
	"github.com/moe2code/twoboards.go/pkg/power"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.NewConfig()
	b := conf.MustNewBus()

	n := node.New(&node.Initiator{})
	n.Bus = b
	n.Region = conf.ScoreRegion()
	n.Power = &power.Choreographer{
		Bus:   b,
		Flags: conf.PowerFlags(),
		Wake:  conf.WakeLine(),
		Halt:  halt,
	}
	if err := n.Boot(); err != nil {
		framework.Trap(err)
	}

	loop := framework.NewLoop().Add(
		n,
		// SIGUSR1 is the user button, SIGUSR2 the light-lost edge
		&input.SignalEdge{Signal: syscall.SIGUSR1, Message: node.TriggerMsg{}},
		&input.SignalEdge{Signal: syscall.SIGUSR2, Message: node.SleepReqMsg{}},
	)
	if err := loop.Run(context.Background()); err != nil && err != context.Canceled {
		framework.Trap(err)
	}
}

func halt() {
	glog.Flush()
	os.Exit(0)
}
