// Command gones runs an NES ROM in a window or headless.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/gones/gones/internal/app"
	"github.com/gones/gones/internal/version"
)

var (
	romFile     = flag.String("rom", "", "Path to NES ROM file")
	configFile  = flag.String("config", "", "Path to configuration file (default "+app.GetDefaultConfigPath()+")")
	nogui       = flag.Bool("nogui", false, "Run without GUI (headless mode)")
	frames      = flag.Int("frames", -1, "Frames to run in headless mode, 0 runs until interrupted")
	traceFile   = flag.String("trace", "", "Write an instruction trace to this file")
	statsView   = flag.Bool("statsview", false, "Serve runtime statistics over HTTP")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	defer glog.Flush()

	if *showVersion {
		version.PrintBuildInfo(os.Stdout)
		return
	}

	rom := *romFile
	if rom == "" && flag.NArg() > 0 {
		rom = flag.Arg(0)
	}
	if rom == "" {
		printUsage()
		os.Exit(2)
	}

	if err := run(rom); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(rom string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	if config.Debug.EnableStatsView {
		startStatsView(config.Debug.StatsViewAddr)
	}

	application, err := app.NewApplication(config, *nogui)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			glog.Errorf("cleanup: %v", err)
		}
	}()
	setupGracefulShutdown(application)

	if err := application.LoadROM(rom); err != nil {
		return err
	}

	glog.Infof("%s starting, %s mode", version.GetVersion(), modeName(application.IsHeadless()))
	if err := application.Run(); err != nil {
		return err
	}
	glog.Infof("stopped after %d frames", application.GetFrameCount())
	return nil
}

// loadConfig reads the configuration file and applies flag overrides. A
// missing default file is not an error.
func loadConfig() (*app.Config, error) {
	config := app.NewConfig()
	path := *configFile
	if path == "" {
		path = app.GetDefaultConfigPath()
	}
	if err := config.LoadFromFile(path); err != nil {
		if *configFile != "" {
			return nil, err
		}
		glog.Warningf("could not load config from %s, using defaults: %v", path, err)
		config = app.NewConfig()
	}

	if *nogui {
		config.Video.Backend = "headless"
	}
	if *frames >= 0 {
		config.Emulation.HeadlessFrames = *frames
	}
	if *traceFile != "" {
		config.Debug.TraceFile = *traceFile
	}
	if *statsView {
		config.Debug.EnableStatsView = true
	}
	if glog.V(2) {
		config.Debug.LogRegisters = true
	}
	return config, nil
}

// setupGracefulShutdown turns the first SIGINT or SIGTERM into a stop
// request. Run and the deferred Cleanup then finish on the main goroutine;
// a second signal kills the process.
func setupGracefulShutdown(application *app.Application) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		signal.Stop(c)
		glog.Info("interrupt received, shutting down")
		application.RequestStop()
	}()
}

func modeName(headless bool) string {
	if headless {
		return "headless"
	}
	return "window"
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "gones - Go NES Emulator")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "USAGE:")
	fmt.Fprintln(out, "  gones [options] -rom <file>")
	fmt.Fprintln(out, "  gones [options] <file>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "OPTIONS:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "EXAMPLES:")
	fmt.Fprintln(out, "  gones -rom game.nes                       # Play in a window")
	fmt.Fprintln(out, "  gones -nogui -frames 600 -rom game.nes    # Run 600 frames headless")
	fmt.Fprintln(out, "  gones -nogui -trace cpu.log -rom test.nes # Write a nestest-style trace")
	fmt.Fprintln(out, "  gones -v=2 -logtostderr -rom game.nes     # Log PPU register traffic")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "CONTROLS (Default):")
	fmt.Fprintln(out, "  WASD   - D-Pad")
	fmt.Fprintln(out, "  J / K  - A / B")
	fmt.Fprintln(out, "  Enter  - Start")
	fmt.Fprintln(out, "  Space  - Select")
	fmt.Fprintln(out, "  Escape - Quit")
}
