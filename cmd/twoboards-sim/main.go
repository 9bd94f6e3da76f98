// Command twoboards-sim runs both roles in one process over the
// in-memory bus, for watching the protocol without a broker or a peer.
package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/bus"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/node"
	"github.com/moe2code/twoboards.go/pkg/nvram"
	"github.com/moe2code/twoboards.go/pkg/power"
)

var roundPeriod = 4 * time.Second

func init() {
	flag.DurationVar(&roundPeriod, "round", roundPeriod, "Round period.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	mem := bus.NewMem()

	ini := newNode(&node.Initiator{
		RoundTicks: int(roundPeriod / fx.DefaultInterval),
	}, mem)
	ini.Region = &nvram.Mem{}

	behavior := &node.Responder{}
	resp := newNode(behavior, mem)
	behavior.Indicator = &node.Lamps{Console: resp.Console}

	// each node owns its loop, message queues are per node
	iniLoop := fx.NewLoop().Add(ini)
	respLoop := fx.NewLoop().Add(resp)

	if err := ini.Boot(); err != nil {
		glog.Exit(err)
	}
	if err := resp.Boot(); err != nil {
		glog.Exit(err)
	}

	// the user button is pressed right at startup
	iniLoop.PostMessage(node.TriggerMsg{})

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("initiator", iniLoop), fx.NamedRun("responder", respLoop))
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}

func newNode(behavior node.Behavior, mem *bus.Mem) *node.Node {
	port := mem.Join()
	n := node.New(behavior)
	n.Bus = port
	n.Power = &power.Choreographer{
		Bus:   port,
		Flags: &power.MemFlags{},
		Halt:  halt,
	}
	return n
}

func halt() {
	glog.Flush()
	os.Exit(0)
}
