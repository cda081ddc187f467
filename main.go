package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/donat19/intel-render-engine/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "intel-render-engine"
	app.Usage = "interactive opencl raymarching renderer"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
		{
			Name:  "render",
			Usage: "render an interactive view of a built-in scene",
			Description: `
Open a window and fly through one of the built-in raymarched scenes.

Controls: WASD moves, Q/E descends/ascends, hold the left mouse button to
look around, Tab cycles scenes, T cycles tone-mapping operators, -/= and
[/] adjust exposure and gamma, R resets the camera, F11 toggles
fullscreen.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "demo",
					Usage: "initial scene to render",
				},
				cli.BoolFlag{
					Name:  "no-hdr",
					Usage: "disable the hdr pipeline and render straight to 8-bit",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "exposure for tone-mapping",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 2.2,
					Usage: "gamma for the final encode",
				},
				cli.StringFlag{
					Name:  "tone-mapping",
					Value: "reinhard",
					Usage: "tone-mapping operator (linear, reinhard, filmic, aces)",
				},
				cli.StringSliceFlag{
					Name:  "blacklist, b",
					Value: &cli.StringSlice{},
					Usage: "blacklist opencl devices whose names contain this value",
				},
			},
			Action: cmd.RenderInteractive,
		},
	}

	app.Run(os.Args)
}
