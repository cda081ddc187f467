package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/donat19/intel-render-engine/engine"
	"github.com/donat19/intel-render-engine/engine/opencl"
	"github.com/donat19/intel-render-engine/engine/opencl/device"
	"github.com/donat19/intel-render-engine/renderer"
	"github.com/donat19/intel-render-engine/scene"
)

// Render an interactive view of a catalog scene.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	dev, err := pickDevice(ctx.StringSlice("blacklist"))
	if err != nil {
		return err
	}
	logger.Noticef("using device: %s (%s)", dev.Name, dev.Type)

	catalog := scene.DefaultCatalog()
	sceneName := ctx.String("scene")
	if !catalog.Contains(sceneName) {
		return fmt.Errorf("unknown scene %q; available scenes: %s", sceneName, strings.Join(catalog.Names(), ", "))
	}

	eng, err := opencl.NewPipeline(dev, catalog, opencl.Options{
		Width:  ctx.Int("width"),
		Height: ctx.Int("height"),
		Scene:  sceneName,
		HDR:    !ctx.Bool("no-hdr"),
	})
	if err != nil {
		return err
	}

	eng.SetExposure(float32(ctx.Float64("exposure")))
	eng.SetGamma(float32(ctx.Float64("gamma")))

	// Unrecognized operator names fall back to reinhard.
	toneOp := opencl.ParseToneOperator(ctx.String("tone-mapping"))
	if err = eng.SetToneMapping(toneOp.String()); err != nil {
		eng.Close()
		return err
	}

	r, err := renderer.NewInteractive(eng, renderer.Options{
		FrameW:     uint32(ctx.Int("width")),
		FrameH:     uint32(ctx.Int("height")),
		Title:      "intel-render-engine",
		SceneNames: catalog.Names(),
	})
	if err != nil {
		eng.Close()
		return err
	}
	defer r.Close()

	if err = r.Run(); err != nil {
		return err
	}

	displayFrameStats(eng.Stats())
	return nil
}

// Select the fastest opencl device that survives the blacklist filters.
func pickDevice(blackList []string) (*device.Device, error) {
	devList, err := device.SelectDevices(device.AllDevices, "")
	if err != nil {
		return nil, err
	}

	var best *device.Device
	for _, dev := range devList {
		blacklisted := false
		for _, text := range blackList {
			if strings.Contains(dev.Name, text) {
				blacklisted = true
				break
			}
		}
		if blacklisted {
			continue
		}
		if best == nil || dev.Speed > best.Speed {
			best = dev
		}
	}

	if best == nil {
		return nil, opencl.ErrDeviceUnavailable
	}
	return best, nil
}

func displayFrameStats(stats *engine.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Scene kernel", "Tonemap", "Last frame"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.FrameCount),
		fmt.Sprintf("%s", stats.SceneKernelTime),
		fmt.Sprintf("%s", stats.TonemapTime),
		fmt.Sprintf("%s", stats.RenderTime),
	})
	table.Render()

	logger.Noticef("session statistics\n%s", buf.String())
}
