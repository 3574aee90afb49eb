package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/wienergl/wiener/config"
	"github.com/wienergl/wiener/engine"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
	"github.com/wienergl/wiener/renderer/rend3dgl"
)

var examples = []string{"triangle", "uniform", "model", "framebuffer", "texture", "texture_export"}

type options struct {
	Example     string
	ConfigPath  string
	ModelPath   string
	TexturePath string
	ExportPath  string
	Watch       bool
	MetricsAddr string
}

func parseFlags() options {

	var opts options
	flag.StringVar(&opts.Example, "example", "triangle", "Example to run: "+strings.Join(examples, ", "))
	flag.StringVar(&opts.ConfigPath, "config", "", "YAML config file. Defaults are used when empty")
	flag.StringVar(&opts.ModelPath, "model", "res/models/icosahedron.off", "Model for the model and framebuffer examples. OFF files are read directly, anything else goes through assimp")
	flag.StringVar(&opts.TexturePath, "texture", "", "Image for the texture example. A checkerboard is generated when empty")
	flag.StringVar(&opts.ExportPath, "out", "export.png", "Output png of the texture_export example")
	flag.BoolVar(&opts.Watch, "watch", false, "Load shaders from res/shaders on disk and rebuild them when they change")
	flag.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address, e.g. :9090. Overrides the config")
	flag.Parse()

	return opts
}

func loadConfig(opts options) (*config.Config, error) {

	cfg := config.Default()
	if opts.ConfigPath != "" {

		var err error
		cfg, err = config.Parse(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}

	if cfg.Window.Title == config.Default().Window.Title {
		cfg.Window.Title = "wiener - " + opts.Example
	}

	return cfg, nil
}

func newGame(opts options, base *demo) (engine.Game, error) {

	switch opts.Example {
	case "triangle":
		return &triangleDemo{demo: base}, nil
	case "uniform":
		return &uniformDemo{demo: base}, nil
	case "model":
		return &modelDemo{demo: base, modelPath: opts.ModelPath}, nil
	case "framebuffer":
		return &framebufferDemo{demo: base, modelPath: opts.ModelPath}, nil
	case "texture_export":
		return &framebufferDemo{demo: base, modelPath: opts.ModelPath, exportPath: opts.ExportPath}, nil
	case "texture":
		return &textureDemo{demo: base, texturePath: opts.TexturePath}, nil
	}

	return nil, fmt.Errorf("unknown example '%s'. Must be one of: %s", opts.Example, strings.Join(examples, ", "))
}

func serveMetrics(addr string) {

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	go func() {
		logging.InfoLog.Printf("Serving metrics on %s/metrics\n", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrLog.Printf("Metrics server stopped. Err: %s\n", err)
		}
	}()
}

// run returns instead of exiting so every deferred cleanup runs before main exits
func run(opts options) error {

	if !slices.Contains(examples, opts.Example) {
		return fmt.Errorf("unknown example '%s'. Must be one of: %s", opts.Example, strings.Join(examples, ", "))
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The environment wins over the config so a single run can be made louder
	if os.Getenv(logging.EnvVar) == "" {
		lvl, _ := logging.ParseLevel(cfg.LogLevel)
		logging.SetLevel(lvl)
	}
	logging.InfoLog.Printf("Using config:\n%s", cfg.String())

	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr)
	}

	//Init engine
	if err := engine.Init(); err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}
	defer engine.Terminate()

	//Create window
	window, err := engine.NewWindowBuilder().WithConfig(cfg).Build()
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	shdrs, err := newShaderLibrary(opts.Watch)
	if err != nil {
		return fmt.Errorf("failed to set up shaders: %w", err)
	}
	defer shdrs.Close()

	base := &demo{
		Win:     window,
		Rend:    rend3dgl.NewRend3DGL(),
		Cfg:     cfg,
		Shaders: shdrs,
	}

	game, err := newGame(opts, base)
	if err != nil {
		return err
	}

	if err := engine.Run(game, window, base.Rend); err != nil {
		return err
	}

	return base.err
}

func main() {
	if err := run(parseFlags()); err != nil {
		logging.ErrLog.Fatalln(err)
	}
}
