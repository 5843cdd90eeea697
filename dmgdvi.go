// This file is part of dmgdvi.
//
// dmgdvi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dmgdvi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dmgdvi.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dmgdvi/dmgdvi/audio"
	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/limiter"
	"github.com/dmgdvi/dmgdvi/logger"
	"github.com/dmgdvi/dmgdvi/paths"
	"github.com/dmgdvi/dmgdvi/pipeline"
	"github.com/dmgdvi/dmgdvi/prefs"
	"github.com/dmgdvi/dmgdvi/preview"
	"github.com/dmgdvi/dmgdvi/splash"
	"github.com/dmgdvi/dmgdvi/statsview"
	"github.com/dmgdvi/dmgdvi/synthetic"
	"github.com/dmgdvi/dmgdvi/userinput/terminal"
	"github.com/dmgdvi/dmgdvi/version"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

func main() {
	app := cli.NewApp()

	app.Name = version.ApplicationName
	app.Usage = "DMG pixel bus to DVI"
	app.Version = version.String()

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "log",
			Usage: "echo debugging log to stderr",
		},
		&cli.StringFlag{
			Name:  "prefs",
			Usage: `preferences for this session. for example "palette.index::3; video.blend::true"`,
		},
		&cli.BoolFlag{
			Name:  "statsview",
			Usage: fmt.Sprintf("run stats server on %s", statsview.Address),
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("log") {
			logger.SetEcho(os.Stderr, false)
		} else {
			logger.SetEcho(nil, false)
		}
		if p := c.String("prefs"); p != "" {
			prefs.PushCommandLineStack(p)
		}
		if c.Bool("statsview") {
			if statsview.Available() {
				statsview.Launch(os.Stdout, statsview.Address)
			} else {
				fmt.Println("* statsview not available with this build")
			}
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "run",
			Usage:     "run the pipeline from the synthetic bus generator",
			ArgsUsage: " ",
			Flags: append(pipelineFlags(),
				&cli.StringFlag{
					Name:  "pattern",
					Value: "scroll",
					Usage: fmt.Sprintf("test pattern: %s", strings.Join(synthetic.PatternNames(), ", ")),
				},
				&cli.IntFlag{
					Name:  "frames",
					Usage: "number of bus frames to generate. unlimited if zero",
				},
				&cli.StringFlag{
					Name:  "record-bus",
					Usage: "record the bus samples to a file for replay",
				},
			),
			Action: func(c *cli.Context) error {
				return exit(runSynthetic(c))
			},
		},
		{
			Name:      "replay",
			Usage:     "run the pipeline from a logic analyser file",
			ArgsUsage: "FILE",
			Flags: append(pipelineFlags(),
				&cli.BoolFlag{
					Name:  "loop",
					Usage: "restart the file when it ends",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				return exit(runReplay(c))
			},
		},
		{
			Name:      "encode",
			Usage:     "encode bus frames and save the decoded output as a PNG file",
			ArgsUsage: "[FILE]",
			Flags: append(pipelineFlags(),
				&cli.StringFlag{
					Name:  "pattern",
					Value: "bars",
					Usage: "test pattern if no logic analyser file is given",
				},
				&cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of bus frames to generate",
				},
				&cli.StringFlag{
					Name:  "output",
					Value: "encode",
					Usage: "base name of the PNG file",
				},
			),
			Action: func(c *cli.Context) error {
				return exit(encode(c))
			},
		},
		{
			Name:      "palettes",
			Usage:     "list the colour schemes",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				listPalettes(os.Stdout)
				return nil
			},
		},
		{
			Name:      "dump",
			Usage:     "write a graphviz description of the pipeline state",
			ArgsUsage: " ",
			Flags:     pipelineFlags(),
			Action: func(c *cli.Context) error {
				return exit(dump(c, os.Stdout))
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}

func exit(err error) error {
	if err != nil {
		return cli.NewExitError(err, 10)
	}
	return nil
}

func pipelineFlags() []cli.Flag {
	modes := make([]string, 0, len(specification.OutputList))
	for _, o := range specification.OutputList {
		modes = append(modes, o.ID)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:  "mode",
			Value: specification.Output640x480.ID,
			Usage: fmt.Sprintf("output mode: %s", strings.Join(modes, ", ")),
		},
		&cli.IntFlag{
			Name:  "palette",
			Value: palette.DefaultScheme,
			Usage: "colour scheme index. see the palettes command",
		},
		&cli.BoolFlag{
			Name:  "blend",
			Usage: "blend consecutive frames",
		},
		&cli.IntFlag{
			Name:  "slots",
			Value: pipeline.DefaultSlots,
			Usage: "number of frame slots",
		},
		&cli.StringFlag{
			Name:  "strategy",
			Value: pipeline.StrategySequencer.String(),
			Usage: "capture strategy: sequencer, bitbang",
		},
		&cli.BoolFlag{
			Name:  "fullres",
			Usage: "encode every symbol. required for odd pixel scales",
		},
		&cli.StringFlag{
			Name:  "audio",
			Usage: "audio source: tone, silence or a WAV/MP3 file",
		},
		&cli.StringFlag{
			Name:  "record",
			Usage: "record the audio output to a WAV file",
		},
		&cli.StringFlag{
			Name:  "splash",
			Usage: "image to show until the first frame is captured",
		},
		&cli.StringFlag{
			Name:  "custom-palette",
			Usage: "image to build a four colour palette from",
		},
		&cli.BoolFlag{
			Name:  "preview",
			Usage: "show the decoded output in a window",
		},
		&cli.BoolFlag{
			Name:  "terminal",
			Usage: "read palette and blend keys from the terminal",
		},
	}
}

// newConfig builds the pipeline configuration from the command line.
func newConfig(c *cli.Context) (pipeline.Config, error) {
	cfg := pipeline.Config{
		Capture:     capture.DefaultConfig,
		Palettes:    palette.Schemes,
		Palette:     c.Int("palette"),
		Blend:       c.Bool("blend"),
		Slots:       c.Int("slots"),
		AudioRecord: c.String("record"),
	}

	var err error

	cfg.Output, err = specification.SearchOutput(c.String("mode"))
	if err != nil {
		return cfg, err
	}

	cfg.Strategy, err = pipeline.SearchStrategy(c.String("strategy"))
	if err != nil {
		return cfg, err
	}

	if c.Bool("fullres") {
		cfg.Mode = tmds.FullRes
	}

	if fn := c.String("custom-palette"); fn != "" {
		pal, err := customPalette(fn)
		if err != nil {
			return cfg, err
		}

		// the custom palette is the only palette
		cfg.Palettes = []palette.Palette{pal}
		cfg.Palette = 0
	}

	pal := &cfg.Palettes[palette.Wrap(cfg.Palette, len(cfg.Palettes))]
	if fn := c.String("splash"); fn != "" {
		cfg.Splash, err = splash.Load(fn, pal, cfg.Capture.Spec)
	} else {
		cfg.Splash, err = splash.Default(cfg.Capture.Spec)
	}
	if err != nil {
		return cfg, err
	}

	switch a := c.String("audio"); a {
	case "":
	case "tone":
		cfg.Audio = &audio.Tone{}
	case "silence":
		cfg.Audio = audio.Silence{}
	default:
		cfg.Audio, err = audio.LoadFile(a)
		if err != nil {
			return cfg, err
		}
	}

	// the preferences file is not used when the palettes have been replaced
	if c.String("custom-palette") == "" {
		cfg.PrefsFile, err = paths.ResourcePath("", "preferences")
		if err != nil {
			return cfg, err
		}
	}

	cfg.SnapshotDir, err = paths.ResourcePath("snapshots", "")
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func customPalette(fn string) (palette.Palette, error) {
	img, err := splash.Decode(fn)
	if err != nil {
		return palette.Palette{}, err
	}
	return palette.FromImage(fn, img)
}

func runSynthetic(c *cli.Context) error {
	pattern, err := synthetic.SearchPattern(c.String("pattern"))
	if err != nil {
		return err
	}

	bus, err := synthetic.NewBus(capture.DefaultConfig, pattern)
	if err != nil {
		return err
	}
	bus.SetLimit(c.Int("frames"))

	lmtr := limiter.NewLimiter(capture.DefaultConfig.Spec.RefreshRate)
	defer lmtr.Stop()
	bus.SetLimiter(lmtr)

	var src io.Reader = bus
	if fn := c.String("record-bus"); fn != "" {
		rec, done, err := capture.Record(bus, fn)
		if err != nil {
			return err
		}
		defer done()
		src = rec
	}

	return run(c, src)
}

func runReplay(c *cli.Context) error {
	rep, err := capture.OpenReplay(c.Args().First(), c.Bool("loop"))
	if err != nil {
		return err
	}
	defer rep.Close()

	return run(c, rep)
}

// run the pipeline until it stops or is interrupted.
func run(c *cli.Context, src io.Reader) error {
	cfg, err := newConfig(c)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, src)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx)
		stop()
	}()

	if c.Bool("terminal") {
		term, err := terminal.NewTerminal(os.Stdin)
		if err != nil {
			p.Stop()
			<-done
			return err
		}
		go func() {
			if err := term.Run(ctx, p.Events()); err != nil {
				logger.Log(logger.Allow, "terminal", err)
			}
		}()
	}

	// the preview window must run in the main thread
	if c.Bool("preview") {
		err := runPreview(ctx, p, cfg.Output)
		p.Stop()
		if err != nil {
			<-done
			return err
		}
	}

	err = <-done
	logger.Logf(logger.Allow, "dmgdvi", "%s", p.Stats())

	return err
}

func runPreview(ctx context.Context, p *pipeline.Pipeline, out specification.Output) error {
	w := out.OutputWords() * out.SymbolsPerWord
	h := out.Scanlines() * out.VerticalRepeat

	win, err := preview.NewWindow(version.ApplicationName, p.Picture(), w, h)
	if err != nil {
		return err
	}
	defer win.Destroy()

	return win.Run(ctx, p.Events())
}

func encode(c *cli.Context) error {
	var src io.Reader

	if c.NArg() > 0 {
		rep, err := capture.OpenReplay(c.Args().First(), false)
		if err != nil {
			return err
		}
		defer rep.Close()
		src = rep
	} else {
		pattern, err := synthetic.SearchPattern(c.String("pattern"))
		if err != nil {
			return err
		}
		bus, err := synthetic.NewBus(capture.DefaultConfig, pattern)
		if err != nil {
			return err
		}
		bus.SetLimit(max(c.Int("frames"), 1))
		src = bus
	}

	cfg, err := newConfig(c)
	if err != nil {
		return err
	}
	cfg.Digest = true
	cfg.SwatchFrames = -1

	p, err := pipeline.New(cfg, src)
	if err != nil {
		return err
	}

	if err := p.Run(context.Background()); err != nil {
		return err
	}

	fn, err := p.Picture().Save(c.String("output"))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", fn)
	fmt.Printf("video %s\n", p.VideoDigest().Hash())
	if d := p.AudioDigest(); d != nil {
		fmt.Printf("audio %s\n", d.Hash())
	}

	return nil
}

func listPalettes(w io.Writer) {
	for i, p := range palette.Schemes {
		mark := " "
		if i == palette.DefaultScheme {
			mark = "*"
		}
		fmt.Fprintf(w, "%s%2d %-24s %s %s %s %s\n", mark, i, p.Name,
			p.Colors[0], p.Colors[1], p.Colors[2], p.Colors[3])
	}
}

func dump(c *cli.Context, w io.Writer) error {
	cfg, err := newConfig(c)
	if err != nil {
		return err
	}

	// the graph of a pipeline that has not run
	p, err := pipeline.New(cfg, strings.NewReader(""))
	if err != nil {
		return err
	}

	p.DumpGraph(w)

	return nil
}
