package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/mogaika/heliview/config"
	"github.com/mogaika/heliview/editor/r3d"
	"github.com/mogaika/heliview/editor/window"
	"github.com/mogaika/heliview/frame"
	"github.com/mogaika/heliview/heli"
	"github.com/mogaika/heliview/inspect"
	"github.com/mogaika/heliview/status"
	"github.com/mogaika/heliview/web"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var configPath, addr, model string
	var chase bool
	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&addr, "i", "", "Inspector address, overrides config; 'off' disables")
	flag.StringVar(&model, "model", "", "glTF file with helicopter parts, overrides config")
	flag.BoolVar(&chase, "chase", false, "Start in chase camera mode")
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
	if model != "" {
		cfg.Scene.Model = model
	}
	if chase {
		cfg.Camera.Chase = true
	}

	win, err := window.Open(cfg.Window)
	if err != nil {
		log.Fatalf("[heliview] %v", err)
	}
	defer win.Close()

	bindings, err := cfg.Bindings()
	if err != nil {
		log.Fatalf("[heliview] %v", err)
	}
	if err := win.SetKeys(bindings); err != nil {
		log.Fatalf("[heliview] %v", err)
	}

	renderer, err := r3d.NewRenderer()
	if err != nil {
		log.Fatalf("[heliview] %v", err)
	}
	defer renderer.Destroy()

	width, height := win.GetFramebufferSize()
	st, built, err := heli.Setup(cfg, renderer, width, height)
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
				log.Printf("[web] %v", err)
			}
		}()
	}
	hub.Info("scene ready: %d helicopters, session %v", len(built.Helicopters), store.Session())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer.Begin(width, height)
	st = frame.Run(ctx, st, win, win, renderer, func(st frame.State) {
		win.SwapBuffers()
		store.Publish(st)

		width, height := win.GetFramebufferSize()
		renderer.Begin(width, height)
	})
	log.Printf("[heliview] stopped after %d frames, %.1fs", st.Frame, st.Time)
}
