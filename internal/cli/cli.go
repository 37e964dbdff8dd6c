// Package cli implements the vidar command line: rendering scenes to PNG
// frames, inspecting scene files and listing the available effects.
package cli

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/khanaslam439/vidar/core"
	"github.com/khanaslam439/vidar/effect"
	"github.com/khanaslam439/vidar/internal/metrics"
	"github.com/khanaslam439/vidar/internal/scene"
	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/val"
)

// Version is reported by --version.
var Version = "0.1.0"

// BuildCLI assembles the root command.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vidar",
		Short: "vidar: layered video compositing",
		Long: `vidar composes timed layers (text, images, frame sequences and audio)
into a movie and renders it frame by frame.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(buildRenderCommand())
	rootCmd.AddCommand(buildInspectCommand())
	rootCmd.AddCommand(buildEffectsCommand())

	return rootCmd
}

type renderFlags struct {
	out         string
	fps         float64
	start, end  float64
	metricsAddr string
	progress    bool
}

func buildRenderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render SCENE",
		Short: "Render a scene to numbered PNG frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "frames", "output directory")
	cmd.Flags().Float64Var(&f.fps, "fps", 0, "frame rate (default: the scene's)")
	cmd.Flags().Float64Var(&f.start, "start", 0, "first rendered time in seconds")
	cmd.Flags().Float64Var(&f.end, "end", 0, "end time in seconds (default: movie end)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while rendering")
	cmd.Flags().BoolVar(&f.progress, "progress", true, "show a progress spinner")

	return cmd
}

func runRender(cmd *cobra.Command, path string, f renderFlags) error {
	s, err := scene.Load(path, nil)
	if err != nil {
		return err
	}

	fps := s.FrameRate
	if f.fps > 0 {
		fps = f.fps
	}
	cfg := core.ApplyRenderOptions(core.WithFrameRate(fps), core.WithRange(f.start, f.end))

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return fmt.Errorf("failed to create metrics collector: %w", err)
	}
	s.Movie.SetObserver(collector)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if f.metricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, f.metricsAddr, reg); err != nil {
				slog.Error("metrics server failed", slog.Any("err", err))
			}
		}()
	}

	if err := os.MkdirAll(f.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	total := s.Movie.FrameCount(cfg)
	slog.Info("rendering",
		slog.String("scene", path),
		slog.Int("frames", total),
		slog.Float64("fps", cfg.FrameRate),
		slog.String("out", f.out))

	begin := time.Now()
	render := func(ctx context.Context) error {
		return s.Movie.RenderFrames(ctx, cfg, func(i int, _ float64, frame *image.RGBA) error {
			err := writeFrame(filepath.Join(f.out, frameName(i)), frame)
			collector.RecordWrite(err)
			return err
		})
	}

	if f.progress {
		title := fmt.Sprintf("Rendering %d frames...", total)
		err = spinner.New().Title(title).Context(ctx).ActionWithErr(render).Run()
	} else {
		err = render(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s in %s\n",
		total, f.out, time.Since(begin).Round(time.Millisecond))
	return nil
}

func frameName(i int) string { return fmt.Sprintf("frame_%05d.png", i) }

func writeFrame(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func buildInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SCENE",
		Short: "Print the movie settings and layer table of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0], nil)
			if err != nil {
				return err
			}

			m := s.Movie
			out := cmd.OutOrStdout()
			cfg := core.ApplyRenderOptions(core.WithFrameRate(s.FrameRate))
			fmt.Fprintf(out, "size:     %gx%g\n", val.Resolve(m.Width(), 0), val.Resolve(m.Height(), 0))
			fmt.Fprintf(out, "duration: %gs\n", m.Duration())
			fmt.Fprintf(out, "frames:   %d @ %g fps\n\n", m.FrameCount(cfg), s.FrameRate)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTYPE\tSTART\tDURATION\tENABLED\tEFFECTS")
			for i, l := range m.Layers() {
				fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%t\t%d\n",
					i, l.Type(), l.StartTime(), l.Duration(), l.Enabled(), effectCount(l))
			}
			return tw.Flush()
		},
	}
}

func effectCount(l layer.Layer) int {
	if v, ok := l.(interface{ Effects() *layer.Effects }); ok {
		return v.Effects().Len()
	}
	return 0
}

func buildEffectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "effects",
		Short: "List the effect types scenes can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range effect.DefaultRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
