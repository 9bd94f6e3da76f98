package main

//go-build: CGO_ENABLED=0

import (
	"github.com/moe2code/twoboards.go/pkg/cli/sh"
	"github.com/moe2code/twoboards.go/pkg/env"
)

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
