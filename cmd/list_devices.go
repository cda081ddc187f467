package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/donat19/intel-render-engine/engine/opencl/device"
)

// List available opencl platforms and devices.
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	platforms, err := device.GetPlatformInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Platform", "Device", "Type", "Est. GFlops"})

	var deviceCount int
	for _, platform := range platforms {
		for _, dev := range platform.Devices {
			deviceCount++
			table.Append([]string{
				platform.Name,
				dev.Name,
				dev.Type.String(),
				fmt.Sprintf("%d", dev.Speed),
			})
		}
	}
	table.Render()

	logger.Noticef("system provides %d opencl device(s) on %d platform(s)\n%s", deviceCount, len(platforms), buf.String())
	return nil
}
