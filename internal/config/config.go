package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/integlab/internal/quadrature"
)

const (
	DefaultRiemannExpr = "exp(t) + 1"
	DefaultRiemannN    = 4
	DefaultRule        = "midpoint"
	DefaultIntegralN   = 100
	DefaultChartPoints = 200
	DefaultSurfaceN    = 100
	DefaultWindow      = 100
	DefaultSampleWidth = 0.1
	DefaultPeriod      = "1s"
	DefaultTraffic     = 120
	DefaultScanStep    = 0.1
	DefaultScanTol     = 0.1
)

type Config struct {
	Riemann  RiemannConfig  `yaml:"riemann"`
	Integral IntegralConfig `yaml:"integral"`
	Area     AreaConfig     `yaml:"area"`
	Surface  SurfaceConfig  `yaml:"surface"`
	Stream   StreamConfig   `yaml:"stream"`
	Traffic  TrafficConfig  `yaml:"traffic"`
	LogLevel string         `yaml:"log_level"`
}

type RiemannConfig struct {
	Expression string  `yaml:"expression"`
	Variable   string  `yaml:"variable"`
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	N          int     `yaml:"n"`
	Rule       string  `yaml:"rule"`
}

type IntegralConfig struct {
	Expression string  `yaml:"expression"`
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	N          int     `yaml:"n"`
	Points     int     `yaml:"points"`
}

type AreaConfig struct {
	MemoryShift float64 `yaml:"memory_shift"`
	CPUOffset   float64 `yaml:"cpu_offset"`
	Lo          float64 `yaml:"lo"`
	Hi          float64 `yaml:"hi"`
	Step        float64 `yaml:"step"`
	Tolerance   float64 `yaml:"tolerance"`
}

type SurfaceConfig struct {
	Expression string  `yaml:"expression"`
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	N          int     `yaml:"n"`
}

type StreamConfig struct {
	Period      string  `yaml:"period"`
	Window      int     `yaml:"window"`
	SampleWidth float64 `yaml:"sample_width"`
	Seed        int64   `yaml:"seed"`
}

type TrafficConfig struct {
	Steps int `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Riemann: RiemannConfig{
			Expression: DefaultRiemannExpr,
			Variable:   "t",
			A:          0,
			B:          4,
			N:          DefaultRiemannN,
			Rule:       DefaultRule,
		},
		Integral: IntegralConfig{
			Expression: "x^2",
			A:          0,
			B:          1,
			N:          DefaultIntegralN,
			Points:     DefaultChartPoints,
		},
		Area: AreaConfig{
			MemoryShift: 5,
			CPUOffset:   5,
			Lo:          -10,
			Hi:          10,
			Step:        DefaultScanStep,
			Tolerance:   DefaultScanTol,
		},
		Surface: SurfaceConfig{
			Expression: "sqrt(x)",
			A:          0,
			B:          6,
			N:          DefaultSurfaceN,
		},
		Stream: StreamConfig{
			Period:      DefaultPeriod,
			Window:      DefaultWindow,
			SampleWidth: DefaultSampleWidth,
			Seed:        1,
		},
		Traffic:  TrafficConfig{Steps: DefaultTraffic},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PeriodDuration parses the stream tick period.
func (c *Config) PeriodDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Stream.Period)
	if err != nil {
		return 0, fmt.Errorf("stream.period: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("stream.period must be positive, got %s", c.Stream.Period)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if _, err := quadrature.ParseRule(c.Riemann.Rule); err != nil {
		return fmt.Errorf("riemann.rule: %w", err)
	}
	switch {
	case c.Riemann.N <= 0:
		return fmt.Errorf("riemann.n must be positive, got %d", c.Riemann.N)
	case c.Integral.N <= 0:
		return fmt.Errorf("integral.n must be positive, got %d", c.Integral.N)
	case c.Integral.Points <= 0:
		return fmt.Errorf("integral.points must be positive, got %d", c.Integral.Points)
	case c.Surface.N <= 0:
		return fmt.Errorf("surface.n must be positive, got %d", c.Surface.N)
	case c.Area.Step <= 0 || c.Area.Tolerance <= 0:
		return fmt.Errorf("area.step and area.tolerance must be positive")
	case c.Area.Lo > c.Area.Hi:
		return fmt.Errorf("area.lo %v above area.hi %v", c.Area.Lo, c.Area.Hi)
	case c.Stream.Window <= 0:
		return fmt.Errorf("stream.window must be positive, got %d", c.Stream.Window)
	case c.Stream.SampleWidth <= 0:
		return fmt.Errorf("stream.sample_width must be positive, got %v", c.Stream.SampleWidth)
	case c.Traffic.Steps <= 0:
		return fmt.Errorf("traffic.steps must be positive, got %d", c.Traffic.Steps)
	}
	_, err := c.PeriodDuration()
	return err
}
