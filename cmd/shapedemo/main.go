// Command shapedemo renders a few frames of filled shapes headlessly and
// prints batching statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/render"
)

func main() {
	var (
		backendName = flag.String("backend", "noop", "HAL backend: noop or vulkan")
		configPath  = flag.String("config", "", "YAML config file (optional)")
		frames      = flag.Int("frames", 60, "number of frames to render")
		stars       = flag.Int("stars", 200, "number of star shapes per frame")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		shapebatch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := shapebatch.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dev, err := openDevice(*backendName)
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer dev.close()

	handle := render.NewHALDeviceHandle(dev.device, dev.queue, gputypes.TextureFormatBGRA8Unorm)
	handle.SetAdapterInfo(dev.info)

	r, err := render.NewRenderer(handle, render.WithConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Close()

	w := int(float64(cfg.Width) * cfg.Resolution)
	h := int(float64(cfg.Height) * cfg.Resolution)
	target, err := render.NewTextureTarget(dev.device, w, h, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		log.Fatalf("Failed to create target: %v", err)
	}
	defer target.Destroy()

	scene := buildScene(cfg, *stars)
	for i := 0; i < *frames; i++ {
		animate(scene, i)
		if err := r.Render(target, scene...); err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
	}

	s := r.Stats()
	log.Printf("Rendered %d frames on %s (%s): %d flushes, %d draw calls, %d vertices\n",
		s.Frames, dev.info.Name, *backendName, s.Flushes, s.DrawCalls, s.VerticesDrawn)
	if s.Frames > 0 {
		log.Printf("Per frame: %.1f draw calls, %.0f vertices\n",
			float64(s.DrawCalls)/float64(s.Frames), float64(s.VerticesDrawn)/float64(s.Frames))
	}
}

// device is an opened HAL device with its instance.
type device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     gpucontext.AdapterInfo
}

func (d *device) close() {
	d.device.Destroy()
	d.instance.Destroy()
}

func openDevice(name string) (*device, error) {
	variant := gputypes.BackendEmpty
	switch name {
	case "noop":
	case "vulkan":
		variant = gputypes.BackendVulkan
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}

	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%s backend not available", name)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	return &device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info: gpucontext.AdapterInfo{
			Name: selected.Info.Name,
			Type: adapterType(selected.Info.DeviceType),
		},
	}, nil
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// buildScene creates a background, a field of stars and a rotating panel.
func buildScene(cfg shapebatch.Config, stars int) []*render.Graphics {
	w, h := float64(cfg.Width), float64(cfg.Height)

	bg := render.NewGraphics()
	steps := 16
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		bg.FillStyle(shapebatch.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2), 1).
			FillRect(0, h*t, w, h/float64(steps)+1)
	}

	scene := []*render.Graphics{bg}
	for i := 0; i < stars; i++ {
		s := render.NewGraphics()
		hue := float64(i) / float64(stars)
		s.FillStyle(shapebatch.RGB(1, 0.5+hue/2, 1-hue), 0.8).
			FillPath(starPoints(5, 12, 5)...)
		s.Position = shapebatch.Pt(
			math.Mod(float64(i)*97.13, w),
			math.Mod(float64(i)*53.71, h))
		scene = append(scene, s)
	}

	panel := render.NewGraphics()
	panel.FillStyle(shapebatch.Hex("#ffcc00"), 1).
		FillRect(-60, -40, 120, 80).
		FillStyle(shapebatch.Hex("#202030"), 0.9).
		FillPath(
			shapebatch.Pt(-40, -20), shapebatch.Pt(40, -20), shapebatch.Pt(40, 20),
			shapebatch.Pt(0, 0), shapebatch.Pt(-40, 20))
	panel.Position = shapebatch.Pt(w/2, h/2)
	return append(scene, panel)
}

// starPoints returns a concave star with the given number of tips.
func starPoints(tips int, outer, inner float64) []shapebatch.Point {
	pts := make([]shapebatch.Point, 0, tips*2)
	for i := 0; i < tips*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/float64(tips) - math.Pi/2
		pts = append(pts, shapebatch.Pt(r*math.Cos(a), r*math.Sin(a)))
	}
	return pts
}

// animate spins the stars and the panel.
func animate(scene []*render.Graphics, frame int) {
	t := float64(frame) / 60
	for i, g := range scene[1:] {
		g.Rotation = t * (1 + float64(i%3))
	}
	panel := scene[len(scene)-1]
	panel.Scale = shapebatch.Pt(1+0.2*math.Sin(t*2), 1+0.2*math.Sin(t*2))
}
