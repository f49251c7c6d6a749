package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/mogaika/heliview/config"
	"github.com/mogaika/heliview/frame"
	"github.com/mogaika/heliview/heli"
	"github.com/mogaika/heliview/inspect"
	"github.com/mogaika/heliview/mesh"
	"github.com/mogaika/heliview/status"
	"github.com/mogaika/heliview/utils"
	"github.com/mogaika/heliview/web"
)

// headless runs the scene without a window: the frame loop ticks on a fixed
// step, draws into a counting sink and publishes every frame to the inspector.
func main() {
	var configPath, addr, dump string
	var frames int
	var step float64
	var realtime, chase, verbose bool
	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&addr, "i", "", "Address of inspector server, overrides config; 'off' disables")
	flag.IntVar(&frames, "frames", 0, "Stop after this many frames, 0 runs until interrupted")
	flag.Float64Var(&step, "dt", 1.0/60.0, "Seconds per frame")
	flag.BoolVar(&realtime, "realtime", true, "Pace frames to wall time")
	flag.BoolVar(&chase, "chase", false, "Start in chase camera mode")
	flag.StringVar(&dump, "dump", "", "Write the last frame as binary glTF to this file")
	flag.BoolVar(&verbose, "v", false, "Dump the last frame state to the log")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalf("[heliview] %v", err)
		}
	}
	if addr != "" {
		cfg.Inspector = addr
	}
	if chase {
		cfg.Camera.Chase = true
	}

	st, built, err := heli.Setup(cfg, heli.NameUploader{}, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.Fatalf("[heliview] %v", err)
	}

	store := inspect.NewStore()
	hub := status.NewHub()
	defer hub.Close()
	if cfg.Inspector != "" && cfg.Inspector != "off" {
		server := web.NewServer(store, hub, built.Meshes)
		go func() {
			if err := server.ListenAndServe(cfg.Inspector); err != nil {
				log.Fatalf("[web] %v", err)
			}
		}()
	}

	var sampler frame.Sampler = frame.Idle{}
	if frames > 0 {
		script := make(frame.Script, frames-1)
		sampler = &script
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var pace <-chan time.Time
	if realtime && step > 0 {
		ticker := time.NewTicker(time.Duration(step * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	var sink frame.CountingSink
	hub.Info("headless run started, session %v", store.Session())
	st = frame.Run(ctx, st, frame.FixedClock(step), sampler, &sink, func(st frame.State) {
		snap := store.Publish(st)
		if st.Frame%60 == 0 {
			hub.Data(struct {
				Frame  uint64
				Time   float64
				Camera inspect.Camera
			}{snap.Frame, snap.Time, snap.Camera})
		}
		if pace != nil {
			select {
			case <-pace:
			case <-ctx.Done():
			}
		}
	})

	log.Printf("[heliview] %d frames, %.2fs simulated, %d draw calls, %d indices, quit=%v",
		st.Frame, st.Time, sink.Calls, sink.Indices, st.Quit)
	hub.Info("headless run stopped after %d frames", st.Frame)

	if verbose {
		utils.LogDump(store.Latest())
	}
	if dump != "" {
		if err := dumpGlb(dump, store.Latest(), built.Meshes); err != nil {
			log.Fatalf("[heliview] %v", err)
		}
		log.Printf("[heliview] wrote %q", dump)
	}
}

func dumpGlb(path string, snap *inspect.Snapshot, meshes map[string]mesh.Mesh) error {
	if snap == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return mesh.ExportNodes(f, snap.ExportNodes(), meshes)
}
