package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Carmen-Shannon/orbit-go/engine"
	"github.com/Carmen-Shannon/orbit-go/engine/camera"
	"github.com/Carmen-Shannon/orbit-go/engine/config"
	"github.com/Carmen-Shannon/orbit-go/engine/event"
	"github.com/Carmen-Shannon/orbit-go/engine/save"
	"github.com/Carmen-Shannon/orbit-go/engine/window"
	"github.com/spf13/cobra"
)

var (
	configFile string
	saveFile   string
	title      string
	width      int
	height     int
	tickRate   float64
	frameLimit float64
	profile    bool
	farLimit   float32
	verbose    bool
)

// main is the entry point for the orbitview CLI; the root command opens the
// interactive viewer window. It exits the process with status 1 if command
// execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitview",
		Short: "interactive orbit camera viewer",
		RunE:  runViewer,
	}

	rootCmd.PersistentFlags().StringVar(&saveFile, "save", ".orbitview.yaml", "camera state file")

	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&title, "title", "Orbit Viewer", "window title")
	rootCmd.Flags().IntVar(&width, "width", 1280, "window width")
	rootCmd.Flags().IntVar(&height, "height", 720, "window height")
	rootCmd.Flags().Float64Var(&tickRate, "tick", 60, "input tick rate (hz)")
	rootCmd.Flags().Float64Var(&frameLimit, "fps", 0, "render frame cap (0 = uncapped)")
	rootCmd.Flags().BoolVar(&profile, "profile", false, "log frame and memory stats")
	rootCmd.Flags().Float32Var(&farLimit, "far-limit", 0, "override max camera distance (0 = config value)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "log camera mode and pan changes")

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "print the saved camera state",
		RunE:  showState,
	}

	rootCmd.AddCommand(stateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	var store save.Store
	if saveFile != "" {
		store = save.NewFileStore(saveFile)
	} else {
		store = save.NewMemoryStore()
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("failed to flush camera state: %v", err)
		}
	}()

	bus := event.NewBus()
	if verbose {
		bus.Subscribe(event.DistanceModeChanged, func(e event.Event) {
			if p, ok := e.Payload.(camera.ModeChangedPayload); ok {
				log.Printf("distance mode: %s", p.Mode)
			}
		})
		bus.Subscribe(event.PanChanged, func(e event.Event) {
			if p, ok := e.Payload.(camera.PanChangedPayload); ok {
				log.Printf("orbit target: (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
			}
		})
	}

	win := window.NewWindow(
		window.WithTitle(title),
		window.WithWidth(width),
		window.WithHeight(height),
		window.WithDoubleClickWindow(time.Duration(cfg.Input.DoubleClickMS)*time.Millisecond),
	)

	ctrl := camera.NewOrbitController(
		camera.WithConfig(cfg),
		camera.WithStore(store),
		camera.WithBus(bus),
	)
	if farLimit > 0 {
		ctrl.SetFarLimit(farLimit)
	}

	cam := camera.NewCamera(
		camera.WithController(ctrl),
	)

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithCamera(cam),
		engine.WithController(ctrl),
		engine.WithTickRate(tickRate),
		engine.WithRenderFrameLimit(frameLimit),
		engine.WithProfiling(profile),
	)

	e.Run()
	e.Quit()
	return nil
}

func showState(cmd *cobra.Command, args []string) error {
	store := save.NewFileStore(saveFile)
	st := store.Get()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tVALUE")
	fmt.Fprintf(w, "position\t(%.2f, %.2f, %.2f)\n", st.Camera.X, st.Camera.Y, st.Camera.Z)
	fmt.Fprintf(w, "distance mode\t%s\n", st.DistanceMode)
	return w.Flush()
}
