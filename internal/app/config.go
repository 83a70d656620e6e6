// Package app wires the core emulator to a host loop, CLI flags, and a
// graphics backend.
package app

import "flag"

// Config holds the application's CLI-derived configuration. There is
// no config file: fields start from the defaults set by NewConfig and
// are overridden by flags. Brightness, Contrast and Saturation have
// no flag and keep their NewConfig values.
type Config struct {
	ROMPath  string
	Backend  string // "ebitengine", "headless", "terminal"
	Headless bool
	Frames   int // headless mode: stop after N frames (0 = unlimited)
	Scale    int
	VSync    bool
	Filter   string // "nearest", "linear"

	Brightness float32
	Contrast   float32
	Saturation float32

	Debug       bool
	ShowVersion bool
	DumpFrames  bool
	OutputDir   string
}

// NewConfig returns a Config with the spec-mandated defaults.
func NewConfig() *Config {
	return &Config{
		Backend:    "ebitengine",
		Scale:      2,
		VSync:      true,
		Filter:     "nearest",
		Brightness: 1.0,
		Contrast:   1.0,
		Saturation: 1.0,
		OutputDir:  ".",
	}
}

// ParseFlags populates a Config from command-line arguments. args
// excludes the program name (pass os.Args[1:]).
func ParseFlags(args []string) (*Config, error) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("gones", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "graphics backend: ebitengine, headless, terminal")
	fs.BoolVar(&cfg.Headless, "headless", false, "run without opening a window")
	fs.IntVar(&cfg.Frames, "frames", 0, "headless mode: stop after N frames (0 = unlimited)")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "integer window scale for the windowed frontend")
	fs.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "enable vsync for the windowed frontend")
	fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "texture filter: nearest, linear")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable ambient debug logging")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print the build version and exit")
	fs.BoolVar(&cfg.DumpFrames, "dump-frames", false, "headless mode: write each frame as a PPM file")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "headless mode: directory for dumped PPM frames")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		cfg.ROMPath = fs.Arg(0)
	}

	return cfg, nil
}

// GetNESResolution returns the native NES resolution.
func (c *Config) GetNESResolution() (int, int) { return 256, 240 }

// GetWindowResolution returns the window resolution at the configured scale.
func (c *Config) GetWindowResolution() (int, int) {
	w, h := c.GetNESResolution()
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return w * scale, h * scale
}
