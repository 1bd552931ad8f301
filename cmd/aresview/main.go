// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Aresview displays a glTF file, or a demo scene if no
// file is given.
//
// Usage:
//
//	aresview [flags] [file.gltf]
//
// The camera is controlled with the W/A/S/D keys and
// the mouse. Esc closes the window.
//
// On-screen windows require building with the glfw tag.
// The -headless flag renders off-screen through the
// trace driver instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/gviegas/ares/driver/trace"

	"github.com/gviegas/ares/control"
	"github.com/gviegas/ares/engine"
	"github.com/gviegas/ares/event"
	"github.com/gviegas/ares/gltf"
	"github.com/gviegas/ares/scene"
	"github.com/gviegas/ares/wsi"
)

var (
	configPath = flag.String("config", "", "configuration `file` (.toml or .yaml)")
	watch      = flag.Bool("watch", false, "reload the glTF file when it changes")
	headless   = flag.Bool("headless", false, "render off-screen using the trace driver")
	frames     = flag.Int("frames", 0, "exit after rendering `n` frames (0 means run until closed)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.gltf]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		slog.Error("aresview failed", "err", err)
		os.Exit(1)
	}
}

// viewer holds the state of a running viewer.
type viewer struct {
	cfg      Config
	path     string
	log      *slog.Logger
	win      wsi.Window
	cache    *engine.ShaderCache
	renderer *scene.Renderer
	disp     *event.Dispatcher
	watch    *watcher

	scene   *scene.Scene
	ctrl    *control.FPS
	release func()
	width   int
	height  int
	quit    bool
}

func run(path string) error {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Engine.Level()}))
	slog.SetDefault(log)

	title := cfg.Window.Title
	if path != "" {
		title += " - " + filepath.Base(path)
	}
	var win wsi.Window
	if *headless {
		cfg.Engine.Driver = "trace"
		if *frames == 0 {
			*frames = 60
		}
		win, err = wsi.NewHeadless(cfg.Window.Width, cfg.Window.Height, title)
	} else {
		win, err = wsi.NewWindow(cfg.Window.Width, cfg.Window.Height, title)
	}
	if err != nil {
		return err
	}
	defer win.Close()

	engine.Configure(&cfg.Engine)
	gpu, err := engine.Open()
	if err != nil {
		return err
	}
	defer engine.Close()
	cache := engine.NewShaderCache(gpu)
	defer cache.Destroy()
	renderer, err := scene.NewRenderer(gpu)
	if err != nil {
		return err
	}
	renderer.SetLogger(log)

	v := &viewer{
		cfg:      cfg,
		path:     path,
		log:      log,
		win:      win,
		cache:    cache,
		renderer: renderer,
		disp:     new(event.Dispatcher),
	}
	if err := v.load(); err != nil {
		return err
	}
	defer v.unload()

	if *watch {
		if path == "" {
			return errors.New("-watch requires a file")
		}
		if v.watch, err = newWatcher(path); err != nil {
			return err
		}
		defer v.watch.Close()
	}

	// The window is closed by the deferred call, after
	// the scene's resources are destroyed.
	v.disp.Subscribe(event.Close, func(event.Event) { v.quit = true })
	v.disp.Subscribe(event.KeyPress, func(e event.Event) {
		if e.(event.KeyEvent).Key == event.KeyEsc {
			v.quit = true
		}
	})
	if err := win.Map(); err != nil {
		return err
	}
	return v.loop()
}

func (v *viewer) loop() error {
	n := 0
	for !v.quit && v.disp.Process(v.win) {
		if v.watch != nil && v.watch.Changed() {
			if err := v.load(); err != nil {
				v.log.Error("reload failed", "path", v.path, "err", err)
			} else {
				v.log.Info("reloaded", "path", v.path)
			}
		}
		v.fitAspect()
		v.ctrl.Process()
		if err := v.renderer.Render(v.scene); err != nil {
			return err
		}
		n++
		if *frames > 0 && n == *frames {
			v.quit = true
		}
	}
	v.log.Info("viewer done", "frames", n)
	return nil
}

// load loads the scene to display and replaces the
// current one on success.
func (v *viewer) load() error {
	var (
		sc      *scene.Scene
		release func()
	)
	if v.path == "" {
		s, bufs, err := demoScene(v.cache, v.win)
		if err != nil {
			return err
		}
		sc, release = s, func() { destroyBuffers(bufs) }
	} else {
		a, err := gltf.Import(v.path, v.cache, v.win, v.log)
		if err != nil {
			return err
		}
		sc, release = a.Scenes[a.Default], a.Destroy
	}
	if err := v.setupCamera(sc); err != nil {
		release()
		return err
	}
	ctrl, err := control.NewFPS(v.disp, sc.ActiveCamera(), &v.cfg.Controller)
	if err != nil {
		release()
		return err
	}
	v.unload()
	v.scene, v.ctrl, v.release = sc, ctrl, release
	v.width, v.height = 0, 0
	v.log.Info("scene loaded", "name", sc.Name(), "lights", len(sc.LightNodes()))
	return nil
}

func (v *viewer) unload() {
	if v.ctrl != nil {
		v.ctrl.Close()
	}
	if v.release != nil {
		v.release()
	}
	v.scene, v.ctrl, v.release = nil, nil, nil
}

// setupCamera creates a camera for sc if it has none.
// Cameras that the scene did not define are placed
// according to the configuration.
func (v *viewer) setupCamera(sc *scene.Scene) error {
	c := &v.cfg.Camera
	cam := sc.ActiveCamera()
	if cam == nil {
		n, err := sc.CreateCameraNode("camera", sc.Root(), scene.NewPerspective(v.cfg.aspect(), c.YFov, c.ZNear, c.ZFar))
		if err != nil {
			return err
		}
		if err := sc.SetActiveCamera(n); err != nil {
			return err
		}
		cam = n
	} else if cam.Name() != gltf.DefaultCamera {
		return nil
	}
	cam.SetPosition(c.Position[0], c.Position[1], c.Position[2])
	return nil
}

// fitAspect updates the aspect ratio of the active
// camera when the window size changes.
func (v *viewer) fitAspect() {
	w, h := v.win.Width(), v.win.Height()
	if (w == v.width && h == v.height) || w <= 0 || h <= 0 {
		return
	}
	v.width, v.height = w, h
	if p, ok := v.scene.ActiveCamera().Camera().(*scene.Perspective); ok {
		p.SetAspect(float32(w) / float32(h))
	}
}
