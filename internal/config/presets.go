package config

import "sort"

func preset(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// Presets are complete configurations grouped by lesson.
var Presets = map[string]map[string]*Config{
	"riemann": {
		"cpu": DefaultConfig(),
		"fine": preset(func(c *Config) {
			c.Riemann.N = 64
		}),
		"sine": preset(func(c *Config) {
			c.Riemann.Expression = "sin(t)"
			c.Riemann.B = 3.141592653589793
			c.Riemann.N = 16
			c.Riemann.Rule = "trapezoid"
		}),
	},
	"area": {
		"default": DefaultConfig(),
		"narrow": preset(func(c *Config) {
			c.Area.MemoryShift = 3
			c.Area.CPUOffset = 4
		}),
		"apart": preset(func(c *Config) {
			c.Area.CPUOffset = -20
		}),
	},
	"integral": {
		"square": DefaultConfig(),
		"log": preset(func(c *Config) {
			c.Integral.Expression = "log(x)"
			c.Integral.A = 1
			c.Integral.B = 3.718281828459045
			c.Integral.N = 500
		}),
	},
	"surface": {
		"sqrt": DefaultConfig(),
		"cone": preset(func(c *Config) {
			c.Surface.Expression = "x"
			c.Surface.B = 1
		}),
		"sphere": preset(func(c *Config) {
			c.Surface.Expression = "sqrt(1 - x^2)"
			c.Surface.A = -1
			c.Surface.B = 1
			c.Surface.N = 4000
		}),
	},
	"stream": {
		"live": DefaultConfig(),
		"fast": preset(func(c *Config) {
			c.Stream.Period = "200ms"
		}),
		"long": preset(func(c *Config) {
			c.Stream.Window = 300
		}),
	},
}

func GetPreset(lesson, name string) *Config {
	lessonPresets, ok := Presets[lesson]
	if !ok {
		return nil
	}
	cfg, ok := lessonPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names of a lesson in sorted order.
func ListPresets(lesson string) []string {
	lessonPresets, ok := Presets[lesson]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(lessonPresets))
	for name := range lessonPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lessons returns the lessons that have presets, sorted.
func Lessons() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
