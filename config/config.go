package config

import (
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/wienergl/wiener/logging"
)

const (
	ProfileCore   = "core"
	ProfileCompat = "compat"
	ProfileAny    = "any"
)

var colourRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

type Config struct {
	Window      WindowCfg
	GL          GLCfg  `yaml:"gl"`
	ClearColour string `yaml:"clear_colour"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
	MSAASamples int32  `yaml:"msaa_samples"`
	VSync       bool   `yaml:"vsync"`
}

type WindowCfg struct {
	Width  int
	Height int
	Title  string

	// FullscreenMonitor is the index of the monitor to go fullscreen on. A
	// negative value means windowed.
	FullscreenMonitor int `yaml:"fullscreen_monitor"`
}

type GLCfg struct {
	Major   int
	Minor   int
	Profile string
}

func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Width:             640,
			Height:            480,
			Title:             "Hello World!",
			FullscreenMonitor: -1,
		},
		GL: GLCfg{
			Major:   4,
			Minor:   6,
			Profile: ProfileCore,
		},
		ClearColour: "#1A1A1AFF",
		LogLevel:    "info",
		MSAASamples: 4,
		VSync:       true,
	}
}

// Parse reads the yaml file at filename on top of Default, so any key left
// out keeps its default value.
func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer f.Close()

	cfg := Default()
	err = yaml.NewDecoder(f).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s is invalid: %w", filename, err)
	}
	return cfg, nil
}

// Minimum OpenGL version. Shader uniforms are set with glProgramUniform, which is 4.1.
const (
	MinGLMajor = 4
	MinGLMinor = 1
)

// glMinorVersions is the highest minor version of every OpenGL major version
var glMinorVersions = map[int]int{1: 5, 2: 1, 3: 3, 4: 6}

// ValidateGLVersion returns an error if major.minor is not a released OpenGL
// version or is older than MinGLMajor.MinGLMinor
func ValidateGLVersion(major, minor int) error {

	maxMinor, ok := glMinorVersions[major]
	if !ok || minor < 0 || minor > maxMinor {
		return fmt.Errorf("OpenGL %d.%d does not exist", major, minor)
	}

	if major < MinGLMajor || (major == MinGLMajor && minor < MinGLMinor) {
		return fmt.Errorf("OpenGL %d.%d is not supported, the minimum is %d.%d", major, minor, MinGLMajor, MinGLMinor)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if err := ValidateGLVersion(c.GL.Major, c.GL.Minor); err != nil {
		return err
	}

	switch c.GL.Profile {
	case ProfileCore, ProfileCompat, ProfileAny:
	default:
		return fmt.Errorf("unknown gl profile '%s', expected one of %s, %s, %s", c.GL.Profile, ProfileCore, ProfileCompat, ProfileAny)
	}

	if !colourRegex.MatchString(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.MSAASamples < 0 {
		return fmt.Errorf("msaa_samples can't be negative, got %d", c.MSAASamples)
	}

	return nil
}

func (c *Config) Fullscreen() bool {
	return c.Window.FullscreenMonitor >= 0
}

// ClearColourRGBA returns the clear colour with every component in [0,1]
func (c *Config) ClearColourRGBA() (r, g, b, a float32) {
	var rgba color.RGBA
	fmt.Sscanf(c.ClearColour, "#%02x%02x%02x%02x", &rgba.R, &rgba.G, &rgba.B, &rgba.A)
	return float32(rgba.R) / 255, float32(rgba.G) / 255, float32(rgba.B) / 255, float32(rgba.A) / 255
}

func (c *Config) String() string {
	var b strings.Builder

	mode := "windowed"
	if c.Fullscreen() {
		mode = fmt.Sprintf("fullscreen on monitor %d", c.Window.FullscreenMonitor)
	}

	b.WriteString(fmt.Sprintf("Window: %dx%d '%s' (%s)\n", c.Window.Width, c.Window.Height, c.Window.Title, mode))
	b.WriteString(fmt.Sprintf("OpenGL: %d.%d %s\n", c.GL.Major, c.GL.Minor, c.GL.Profile))
	b.WriteString(fmt.Sprintf("Clear colour: %s\n", c.ClearColour))
	b.WriteString(fmt.Sprintf("MSAA samples: %d\n", c.MSAASamples))
	b.WriteString(fmt.Sprintf("VSync: %t\n", c.VSync))
	b.WriteString(fmt.Sprintf("Log level: %s\n", c.LogLevel))
	if c.MetricsAddr != "" {
		b.WriteString(fmt.Sprintf("Metrics: %s\n", c.MetricsAddr))
	}

	return b.String()
}
