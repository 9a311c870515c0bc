package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
	"github.com/cwbudde/algo-blockgraph/dsp/signal"
	"github.com/cwbudde/algo-blockgraph/dsp/system"
	"github.com/cwbudde/algo-blockgraph/dsp/wavio"
	applog "github.com/cwbudde/algo-blockgraph/internal/log"
)

type runner struct {
	log *logrus.Logger

	graphPath string
	blockName string

	inPath     string
	outPath    string
	blockSize  int
	bitDepth   int
	normalize  float64
	ditherGain float64

	kind       string
	length     int
	freq       float64
	sampleRate float64
	seed       int64

	debug bool
}

func newApp(w io.Writer) *cli.App {
	r := &runner{log: applog.GetLogger()}

	graphFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "graph",
			Aliases:     []string{"g"},
			Usage:       "JSON graph description",
			Destination: &r.graphPath,
			Required:    true,
		}
	}
	blockFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "block",
			Aliases:     []string{"b"},
			Usage:       "Name of the block whose output is taken",
			Destination: &r.blockName,
			Required:    true,
		}
	}

	defaults := core.DefaultProcessorConfig()

	return &cli.App{
		Name:                 "blockrun",
		Usage:                "Run signals through a named FIR/IIR/summator block graph",
		EnableBashCompletion: true,
		Writer:               w,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Enable debug logging",
				Destination: &r.debug,
			},
		},
		Before: func(*cli.Context) error {
			if r.debug {
				r.log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "process",
				Aliases: []string{"p"},
				Usage:   "Filter every channel of a WAV file through a block",
				Action:  r.process,
				Flags: []cli.Flag{
					graphFlag(),
					blockFlag(),
					&cli.StringFlag{
						Name:        "in",
						Aliases:     []string{"i"},
						Usage:       "Input WAV file",
						Destination: &r.inPath,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        "out",
						Aliases:     []string{"o"},
						Usage:       "Output WAV file",
						Destination: &r.outPath,
						Required:    true,
					},
					&cli.IntFlag{
						Name:        "block-size",
						Usage:       "Samples per ProcessSignal call",
						Value:       defaults.BlockSize,
						Destination: &r.blockSize,
					},
					&cli.IntFlag{
						Name:        "bit-depth",
						Usage:       "Output bit depth (16, 24 or 32); 0 keeps the input depth",
						Destination: &r.bitDepth,
					},
					&cli.Float64Flag{
						Name:        "normalize",
						Usage:       "Scale the output to this peak; 0 disables",
						Destination: &r.normalize,
					},
					&cli.Float64Flag{
						Name:        "dither",
						Usage:       "TPDF dither gain in LSB; 0 disables",
						Destination: &r.ditherGain,
					},
				},
			},
			{
				Name:      "compute",
				Aliases:   []string{"c"},
				Usage:     "Feed samples one at a time and print each output",
				ArgsUsage: "x0 x1 ...",
				Action:    r.compute,
				Flags:     []cli.Flag{graphFlag(), blockFlag()},
			},
			{
				Name:    "response",
				Aliases: []string{"r"},
				Usage:   "Print the response of a block to a probe signal",
				Action:  r.response,
				Flags: []cli.Flag{
					graphFlag(),
					blockFlag(),
					&cli.StringFlag{
						Name:        "kind",
						Aliases:     []string{"k"},
						Usage:       "Probe signal: impulse, step, sine or noise",
						Value:       "impulse",
						Destination: &r.kind,
					},
					&cli.IntFlag{
						Name:        "length",
						Aliases:     []string{"n"},
						Usage:       "Number of samples",
						Value:       32,
						Destination: &r.length,
					},
					&cli.Float64Flag{
						Name:        "freq",
						Usage:       "Sine frequency in Hz",
						Value:       1000,
						Destination: &r.freq,
					},
					&cli.Float64Flag{
						Name:        "sample-rate",
						Usage:       "Sample rate in Hz",
						Value:       defaults.SampleRate,
						Destination: &r.sampleRate,
					},
					&cli.Int64Flag{
						Name:        "seed",
						Usage:       "Noise seed",
						Value:       1,
						Destination: &r.seed,
					},
				},
			},
			{
				Name:    "inspect",
				Aliases: []string{"ls"},
				Usage:   "List the blocks and connections of a graph",
				Action:  r.inspect,
				Flags:   []cli.Flag{graphFlag()},
			},
			{
				Name:   "info",
				Usage:  "Print the vector kernel level selected for this CPU",
				Action: r.info,
			},
		},
	}
}

func (r *runner) loadGraph() (*system.System, error) {
	raw, err := os.ReadFile(r.graphPath)
	if err != nil {
		return nil, err
	}
	s, err := system.LoadGraph(raw, system.WithLogger(r.log))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.graphPath, err)
	}
	r.log.WithFields(logrus.Fields{"graph": r.graphPath, "blocks": s.Len(), "system": s.ID()}).Debug("graph loaded")
	return s, nil
}

func (r *runner) process(cCtx *cli.Context) error {
	s, err := r.loadGraph()
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := wavio.Read(r.inPath)
	if err != nil {
		return err
	}

	bitDepth := r.bitDepth
	if bitDepth == 0 {
		bitDepth = in.BitDepth
	}
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(in.SampleRate)),
		core.WithBlockSize(r.blockSize),
		core.WithBitDepth(bitDepth),
	)
	if cfg.BitDepth != bitDepth {
		return fmt.Errorf("%w: %d", wavio.ErrUnsupportedBitDepth, bitDepth)
	}

	out := make([][]float64, in.NumChannels())
	for c, ch := range in.Channels {
		s.ResetAll()
		out[c] = make([]float64, len(ch))

		var meter signal.Meter
		pos := 0
		for _, chunk := range signal.Chunks(ch, cfg.BlockSize) {
			dst := out[c][pos : pos+len(chunk)]
			if err := s.ProcessSignal(r.blockName, chunk, dst); err != nil {
				return fmt.Errorf("channel %d: %w", c, err)
			}
			meter.Update(dst)
			pos += len(chunk)
		}

		level := meter.Level()
		r.log.WithFields(logrus.Fields{
			"channel": c,
			"peak_db": fmt.Sprintf("%.2f", level.PeakDB()),
			"rms_db":  fmt.Sprintf("%.2f", level.RMSDB()),
		}).Info("channel filtered")
	}

	if r.normalize > 0 {
		if err := signal.NormalizeAll(out, r.normalize); err != nil {
			return err
		}
	}

	var opts []wavio.WriteOption
	if r.ditherGain > 0 {
		opts = append(opts, wavio.WithDither(r.ditherGain, 1))
	}
	err = wavio.Write(r.outPath, &wavio.Audio{
		Channels:   out,
		SampleRate: int(cfg.SampleRate),
		BitDepth:   cfg.BitDepth,
	}, opts...)
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"in":       r.inPath,
		"out":      r.outPath,
		"block":    r.blockName,
		"channels": len(out),
		"frames":   in.NumFrames(),
	}).Info("processed")
	return nil
}

func (r *runner) compute(cCtx *cli.Context) error {
	s, err := r.loadGraph()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, arg := range cCtx.Args().Slice() {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid sample %q: %w", arg, err)
		}
		y, err := s.ComputeBlock(r.blockName, x)
		if err != nil {
			return err
		}
		fmt.Fprintln(cCtx.App.Writer, strconv.FormatFloat(y, 'g', -1, 64))
	}
	return nil
}

func (r *runner) response(cCtx *cli.Context) error {
	s, err := r.loadGraph()
	if err != nil {
		return err
	}
	defer s.Close()

	g := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(r.sampleRate)},
		signal.WithSeed(r.seed),
	)
	in, err := g.Excitation(r.kind, r.freq, r.length)
	if err != nil {
		return err
	}

	out := make([]float64, len(in))
	if err := s.ProcessSignal(r.blockName, in, out); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cCtx.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "n\tin\tout")
	for i := range out {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\n", i, in[i], out[i])
	}
	li, lo := signal.Measure(in), signal.Measure(out)
	fmt.Fprintf(tw, "peak\t%.6g\t%.6g\n", li.Peak, lo.Peak)
	fmt.Fprintf(tw, "rms\t%.6g\t%.6g\n", li.RMS, lo.RMS)
	fmt.Fprintf(tw, "energy\t%.6g\t%.6g\n", signal.Energy(in), signal.Energy(out))
	return tw.Flush()
}

func (r *runner) inspect(cCtx *cli.Context) error {
	s, err := r.loadGraph()
	if err != nil {
		return err
	}
	defer s.Close()

	tw := tabwriter.NewWriter(cCtx.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tARITY\tSTATE\tSOURCES")
	for _, name := range s.Names() {
		b, err := s.Block(name)
		if err != nil {
			return err
		}
		state, err := s.State(name)
		if err != nil {
			return err
		}
		src, err := s.Sources(name)
		if err != nil {
			return err
		}
		sources := "-"
		if len(src) > 0 {
			sources = strings.Join(src, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", name, b.Kind(), b.Arity(), state, sources)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cCtx.App.Writer, "order: %s\n", strings.Join(s.Order(), " -> "))
	return nil
}

var simdLevels = []cpu.SIMDLevel{
	cpu.SIMDAVX512,
	cpu.SIMDAVX2,
	cpu.SIMDAVX,
	cpu.SIMDSSE2,
	cpu.SIMDNEON,
}

func (r *runner) info(cCtx *cli.Context) error {
	features := cpu.DetectFeatures()

	level := cpu.SIMDNone
	for _, l := range simdLevels {
		if cpu.Supports(features, l) {
			level = l
			break
		}
	}

	fmt.Fprintf(cCtx.App.Writer, "arch: %s\nsimd: %s\n", features.Architecture, level)
	return nil
}
