package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/framewheel/framewheel/loop"
	"github.com/framewheel/framewheel/monitoring"
	"github.com/framewheel/framewheel/session"
	"github.com/framewheel/framewheel/tracing"
)

var (
	fps           float64
	totalFrames   uint64
	monitorPort   int
	noMonitor     bool
	openDashboard bool
	outputName    string
	csvTrace      string
	verbose       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64Var(&fps, "fps", 0,
		"frame rate in frames per second "+
			"(default: FRAMEWHEEL_FPS from the environment, or 30)")
	runCmd.Flags().Uint64Var(&totalFrames, "frames", 0,
		"number of frames to run before stopping (0 runs forever)")
	runCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"port of the monitoring server "+
			"(default: FRAMEWHEEL_MONITOR_PORT, or a random port)")
	runCmd.Flags().BoolVar(&noMonitor, "no-monitor", false,
		"disable the monitoring server")
	runCmd.Flags().BoolVar(&openDashboard, "open", false,
		"open the monitoring dashboard in a browser")
	runCmd.Flags().StringVar(&outputName, "record", "",
		"name of the recording database file")
	runCmd.Flags().StringVar(&csvTrace, "csv-trace", "",
		"additionally trace frames into a CSV file at the given path")
	runCmd.Flags().BoolVar(&verbose, "verbose", false,
		"log every scheduled event run")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo frame loop",
	Long: `Run starts a frame loop with a demo task that periodically ` +
		`schedules a short-lived pulse effect. The loop runs until the ` +
		`requested number of frames completes, the monitor stops it, or ` +
		`the process is interrupted.`,
	Run: func(_ *cobra.Command, _ []string) {
		runLoop()
	},
}

func runLoop() {
	rate := resolveFrameRate()

	frames := uint64(0)
	pulseGap := rate.Frames(time.Second)
	if pulseGap == 0 {
		pulseGap = 1
	}
	task := func(l *loop.FrameLoop) error {
		if frames%pulseGap == 0 {
			l.Schedule("pulse", 5, loop.ActionFunc(func() {
				if verbose {
					log.Printf("pulse @ frame %d", l.CurrentFrame())
				}
			}))
		}

		frames++

		if totalFrames > 0 && frames >= totalFrames {
			l.Stop()
		}

		return nil
	}

	b := session.MakeBuilder().
		WithTask(task).
		WithFrameRate(rate)

	if noMonitor {
		b = b.WithoutMonitoring()
	} else {
		if port := resolveMonitorPort(); port > 0 {
			b = b.WithMonitorPort(port)
		}
		if openDashboard {
			b = b.WithBrowserLaunch()
		}
	}

	if outputName != "" {
		b = b.WithOutputFileName(outputName)
	}

	if csvTrace != "" {
		b = b.WithCSVTrace(csvTrace)
	}

	s := b.Build()
	defer s.Terminate()

	if verbose {
		s.Loop().AcceptHook(loop.NewFrameLogger(log.Default()))
	}

	if totalFrames > 0 && s.Monitor() != nil {
		bar := s.Monitor().CreateProgressBar("frames", totalFrames)
		tracing.CollectFrames(s.Loop(), &barTracer{bar: bar})
	}

	err := s.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "frame loop failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "completed %d frames, average frame time %s\n",
		s.Loop().CurrentFrame(), s.AverageFrameTime().AverageTime())
}

// barTracer feeds per-frame records into a monitor progress bar.
type barTracer struct {
	bar *monitoring.ProgressBar
}

func (t *barTracer) RecordFrame(rec tracing.FrameRecord) {
	t.bar.IncrementFinished(1)

	if rec.Overrun {
		t.bar.IncrementOverruns(1)
	}
}

func resolveFrameRate() loop.Freq {
	if fps > 0 {
		return loop.Freq(fps) * loop.Hz
	}

	if env := os.Getenv("FRAMEWHEEL_FPS"); env != "" {
		parsed, err := strconv.ParseFloat(env, 64)
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "invalid FRAMEWHEEL_FPS %q\n", env)
			os.Exit(1)
		}
		return loop.Freq(parsed) * loop.Hz
	}

	return loop.DefaultFrameRate
}

func resolveMonitorPort() int {
	if monitorPort > 0 {
		return monitorPort
	}

	if env := os.Getenv("FRAMEWHEEL_MONITOR_PORT"); env != "" {
		parsed, err := strconv.Atoi(env)
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "invalid FRAMEWHEEL_MONITOR_PORT %q\n", env)
			os.Exit(1)
		}
		return parsed
	}

	return 0
}
