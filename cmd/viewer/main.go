package main

import (
	"context"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/config"
	"turntable/internal/graphics"
	"turntable/internal/input"
	"turntable/internal/logger"
	"turntable/internal/primitives"
	"turntable/internal/viewer"
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}
	path := config.PathFromEnv()
	cfg, cfgErr := config.Load(path)
	cfg.ApplyEnv()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if cfgErr != nil {
		log.Errorf("%v (using defaults)", cfgErr)
	}
	log.Infof("config %s, primary %s, %d catalog entries", path, cfg.Primary, len(cfg.Catalog))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := viewer.New(cfg, log, cfg.Window.Width, cfg.Window.Height)
	err = config.Watch(ctx, path, func(next config.Config, err error) {
		if err != nil {
			log.Warnf("config reload: %v", err)
			return
		}
		next.ApplyEnv()
		v.Reload(next)
	})
	if err != nil {
		log.Warnf("config hot reload disabled: %v", err)
	}
	v.Start(ctx)
	defer v.Close()

	prims := primitives.NewRegistry()
	poller := input.NewPoller()
	update := func(dt float32) {
		if rl.IsWindowResized() {
			v.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		v.Frame(poller.Poll(), dt)
	}
	draw := func() {
		cam := v.Camera()
		prims.SetView([3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z}, [3]float32{0.5, 1, 0.8})
		v.Draw(prims)
	}
	graphics.Run(graphics.Window{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		TargetFPS: cfg.Window.TargetFPS,
		OnClose: func() {
			v.Unload()
			prims.Unload()
		},
	}, update, draw)
}
