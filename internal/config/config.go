package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version  string   `yaml:"version" json:"version"`
	Endpoint Endpoint `yaml:"endpoint" json:"endpoint"`
	Server   Server   `yaml:"server" json:"server"`
	Data     Data     `yaml:"data" json:"data"`
	Progress Progress `yaml:"progress" json:"progress"`
}

type Endpoint struct {
	URL            string `yaml:"url" json:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

type Server struct {
	Host               string `yaml:"host" json:"host"`
	Port               int    `yaml:"port" json:"port"`
	OpenBrowser        *bool  `yaml:"open_browser" json:"open_browser"`
	OpenBrowserDelayMS int    `yaml:"open_browser_delay_ms" json:"open_browser_delay_ms"`
}

type Data struct {
	Dir            string `yaml:"dir" json:"dir"`
	ClaimedFile    string `yaml:"claimed_file" json:"claimed_file"`
	AllSnapshot    string `yaml:"all_snapshot" json:"all_snapshot"`
	RecentSnapshot string `yaml:"recent_snapshot" json:"recent_snapshot"`
}

type Progress struct {
	TotalPumpkins int `yaml:"total_pumpkins" json:"total_pumpkins"`
}

func (e *Endpoint) ApplyDefaults() {
	if e.URL == "" {
		e.URL = "https://wplace.samuelscheit.com/tiles/pumpkin.json"
	}
	if e.TimeoutSeconds <= 0 {
		e.TimeoutSeconds = 30
	}
}

func (s *Server) ApplyDefaults() {
	if s.Host == "" {
		s.Host = "127.0.0.1"
	}
	if s.Port == 0 {
		s.Port = 5000
	}
	if s.OpenBrowser == nil {
		v := true
		s.OpenBrowser = &v
	}
	if s.OpenBrowserDelayMS <= 0 {
		s.OpenBrowserDelayMS = 1500
	}
}

func (d *Data) ApplyDefaults() {
	if d.Dir == "" {
		d.Dir = "data"
	}
	if d.ClaimedFile == "" {
		d.ClaimedFile = "data.json"
	}
	if d.AllSnapshot == "" {
		d.AllSnapshot = "all_pumpkins.json"
	}
	if d.RecentSnapshot == "" {
		d.RecentSnapshot = "recent_new_pumpkins.json"
	}
}

func (p *Progress) ApplyDefaults() {
	if p.TotalPumpkins <= 0 {
		p.TotalPumpkins = 100
	}
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	c.Endpoint.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Data.ApplyDefaults()
	c.Progress.ApplyDefaults()
}

// Timeout returns the fetch timeout as a duration.
func (e Endpoint) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ClaimedPath is the path of the user-maintained claimed-ID file.
func (c *Config) ClaimedPath() string {
	return filepath.Join(c.Data.Dir, c.Data.ClaimedFile)
}

// AllSnapshotPath is where the full fetched dataset is dumped each run.
func (c *Config) AllSnapshotPath() string {
	return filepath.Join(c.Data.Dir, c.Data.AllSnapshot)
}

// RecentSnapshotPath is where the recent unclaimed subset is dumped each run.
func (c *Config) RecentSnapshotPath() string {
	return filepath.Join(c.Data.Dir, c.Data.RecentSnapshot)
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// LoadOrDefault reads the config file if present and falls back to the
// built-in defaults when it is absent. The tool is expected to run with
// zero configuration.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
