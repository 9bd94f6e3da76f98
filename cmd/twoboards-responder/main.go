package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/env"
	"github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/input"
	"github.com/moe2code/twoboards.go/pkg/node"
	"github.com/moe2code/twoboards.go/pkg/power"
)

var buttonPath string

func init() {
	env.SetupFlags()
	flag.StringVar(&buttonPath, "button", buttonPath,
		"Stats button file; the button is held while the file exists")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.NewConfig()
	if buttonPath == "" {
		buttonPath = filepath.Join(conf.StateDir, "button")
	}
	b := conf.MustNewBus()

	behavior := &node.Responder{
		Line: &input.FileLine{Path: buttonPath},
	}
	n := node.New(behavior)
	behavior.Indicator = &node.Lamps{Console: n.Console}
	n.Bus = b
	n.Power = &power.Choreographer{
		Bus:   b,
		Flags: conf.PowerFlags(),
		Halt:  halt,
	}
	if err := n.Boot(); err != nil {
		framework.Trap(err)
	}

	loop := framework.NewLoop().Add(n)
	if err := loop.Run(context.Background()); err != nil && err != context.Canceled {
		framework.Trap(err)
	}
}

func halt() {
	glog.Flush()
	os.Exit(0)
}
