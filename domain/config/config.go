package config

import (
	"net"
	"strconv"

	"lari-stats/domain/dashboard"
)

// Config represents the structure of config.yml used by the tool.
type Config struct {
	Server    Server    `yaml:"server"`
	Data      Data      `yaml:"data"`
	Dashboard Dashboard `yaml:"dashboard"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr is the host:port the web server listens on.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type Data struct {
	File  string `yaml:"file"`
	Sheet string `yaml:"sheet"`
	Logo  string `yaml:"logo"`
}

type Dashboard struct {
	Title        string `yaml:"title"`
	TopN         int    `yaml:"top_n"`
	DefaultMonth string `yaml:"default_month"`
	Colors       Colors `yaml:"colors"`
}

// Options converts the dashboard section into view options.
func (d Dashboard) Options() dashboard.Options {
	return dashboard.Options{
		TopN: d.TopN,
		Palette: dashboard.Palette{
			Azul:    d.Colors.Azul,
			Naranja: d.Colors.Naranja,
			Verde:   d.Colors.Verde,
		},
	}
}

type Colors struct {
	Azul    string `yaml:"azul"`
	Naranja string `yaml:"naranja"`
	Verde   string `yaml:"verde"`
}

// Defaults returns the configuration used when no file or environment overrides it.
func Defaults() Config {
	return Config{
		Server: Server{Host: "0.0.0.0", Port: 8050},
		Data: Data{
			File:  "./data/LARI2024.xlsx",
			Sheet: "1",
			Logo:  "./data/logo2.png",
		},
		Dashboard: Dashboard{
			Title:        "Análisis de Atenciones LARI - 2024",
			TopN:         5,
			DefaultMonth: "Noviembre",
			Colors: Colors{
				Azul:    "#2B3990",
				Naranja: "#FBB03B",
				Verde:   "#78BE20",
			},
		},
	}
}
