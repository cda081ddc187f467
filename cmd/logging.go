package cmd

import (
	"github.com/urfave/cli"

	"github.com/donat19/intel-render-engine/log"
)

var logger = log.New("intel-render-engine")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
