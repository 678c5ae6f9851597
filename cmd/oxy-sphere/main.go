package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Carmen-Shannon/oxy-sphere/config"
	"github.com/Carmen-Shannon/oxy-sphere/engine"
	"github.com/Carmen-Shannon/oxy-sphere/engine/exporter"
	"github.com/Carmen-Shannon/oxy-sphere/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sphere/engine/scene"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"github.com/Carmen-Shannon/oxy-sphere/engine/survey"
	"github.com/Carmen-Shannon/oxy-sphere/engine/window"
	"github.com/Carmen-Shannon/oxy-sphere/server"
)

const usage = `usage: oxy-sphere [command] [flags]

commands:
  view   [-order n] [-config file]     open the viewer (default)
  stats  [-max n] [-workers n]         print edge and area statistics per order
  export [-order n] -out file.glb      write the sphere as a binary glTF file
  serve  [-addr :8080]                 stream meshes over a websocket at /ws

A bare order, as in "oxy-sphere 3", is the same as "oxy-sphere view -order 3".
The order must be a non-negative integer no larger than the configured max order.
`

func main() {
	log.SetFlags(log.Ltime)
	command, args := splitCommand(os.Args[1:])

	var err error
	switch command {
	case "view":
		err = runView(args)
	case "stats":
		err = runStats(args)
	case "export":
		err = runExport(args)
	case "serve":
		err = runServe(args)
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

// splitCommand picks the subcommand from the arguments. A bare number is rewritten to
// "view -order n"; no arguments or leading flags select view.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "view", nil
	}
	first := args[0]
	if _, err := strconv.Atoi(first); err == nil {
		return "view", append([]string{"-order", first}, args[1:]...)
	}
	if strings.HasPrefix(first, "-") && first != "-h" && first != "-help" && first != "--help" {
		return "view", args
	}
	return first, args[1:]
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
	}
	return fs
}

// loadSettings reads the settings file and applies an order given on the command line.
// A negative order leaves the configured one.
func loadSettings(path string, order int) (config.Settings, error) {
	s, err := config.Load(path)
	if err != nil {
		return s, err
	}
	if order >= 0 {
		err = s.OverrideOrder(order)
	}
	return s, err
}

func runView(args []string) error {
	fs := newFlagSet("view")
	order := fs.Int("order", -1, "subdivision order, defaults to the settings file")
	path := fs.String("config", config.DefaultPath, "settings file")
	profile := fs.Bool("profile", false, "log frame and memory statistics")
	fs.Parse(args)
	if fs.NArg() > 0 {
		fs.Usage()
		os.Exit(2)
	}

	s, err := loadSettings(*path, *order)
	if err != nil {
		return err
	}

	sc, err := scene.NewScene(
		scene.WithSphere(sphere.NewSphere(
			sphere.WithMaxOrder(s.Sphere.MaxOrder),
			sphere.WithLogging(true),
		)),
		scene.WithOrder(s.Sphere.Order),
		scene.WithColor(s.Render.Color),
		scene.WithSpin(s.Render.SpinDegreesPerTick),
		scene.WithAspect(float32(s.Window.Width)/float32(s.Window.Height)),
	)
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(
		engine.WithWindow(window.NewWindow(
			window.WithTitle(s.Window.Title),
			window.WithSize(s.Window.Width, s.Window.Height),
		)),
		engine.WithScene(sc),
		engine.WithTickRate(s.Render.TickRate),
		engine.WithRenderFrameLimit(s.Render.FrameLimit),
		engine.WithProfiling(*profile || s.Render.Profiling),
		engine.WithRendererOptions(
			renderer.WithPresentMode(renderer.ParsePresentMode(s.Render.PresentMode)),
			renderer.WithMSAA(renderer.MSAASampleCount(s.Render.MSAA)),
		),
	)
	if err != nil {
		return err
	}
	eng.Run()
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats")
	maxOrder := fs.Int("max", sphere.DefaultMaxOrder, "last order to measure")
	workers := fs.Int("workers", 4, "number of parallel builds")
	fs.Parse(args)

	stats, err := survey.NewSurveyor(
		survey.WithWorkers(*workers),
		survey.WithLogging(true),
	).Run(*maxOrder)
	if err != nil {
		return err
	}
	return survey.WriteTable(os.Stdout, stats)
}

func runExport(args []string) error {
	fs := newFlagSet("export")
	order := fs.Int("order", -1, "subdivision order, defaults to the settings file")
	out := fs.String("out", "", "output .glb file")
	path := fs.String("config", config.DefaultPath, "settings file")
	fs.Parse(args)
	if *out == "" {
		fs.Usage()
		os.Exit(2)
	}

	s, err := loadSettings(*path, *order)
	if err != nil {
		return err
	}

	sp := sphere.NewSphere(sphere.WithMaxOrder(s.Sphere.MaxOrder))
	defer sp.Release()
	if err := sp.Build(s.Sphere.Order); err != nil {
		return err
	}
	mesh, err := sp.Mesh()
	if err != nil {
		return err
	}

	return exporter.NewExporter(
		exporter.WithColor(s.Render.Color),
		exporter.WithLogging(true),
	).WriteFile(*out, mesh)
}

func runServe(args []string) error {
	fs := newFlagSet("serve")
	path := fs.String("config", config.DefaultPath, "settings file")
	addr := fs.String("addr", "", "listen address, defaults to the settings file")
	fs.Parse(args)

	s, err := loadSettings(*path, -1)
	if err != nil {
		return err
	}
	if *addr != "" {
		s.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(
		server.WithAddr(s.Server.Addr),
		server.WithDefaultOrder(s.Sphere.Order),
		server.WithMaxOrder(s.Sphere.MaxOrder),
		server.WithLogging(true),
	).Serve(ctx)
}
