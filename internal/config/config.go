package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Transport names.
const (
	TransportTCP  = "tcp"
	TransportGRPC = "grpc"
)

// Default values.
const (
	DefaultPort              = 3001
	DefaultAddress           = "127.0.0.1"
	DefaultDashboardInterval = 125 * time.Millisecond
	DefaultHTTPPort          = 8080
	DefaultStreamInterval    = time.Second
	DefaultSendTimeout       = 5 * time.Second
)

// Config is the whole configuration file.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// Transport selects the chat listener: raw TCP framing or gRPC.
	Transport string `yaml:"transport" validate:"oneof=tcp grpc"`

	// ListenAddr is the host part of the listen address. Empty listens on
	// all interfaces.
	ListenAddr string `yaml:"listen_addr" validate:"omitempty,hostname|ip"`

	// Port is the chat port for either transport (default 3001).
	Port int `yaml:"port" validate:"min=1,max=65535"`

	TCP       TCPConfig       `yaml:"tcp"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// TCPConfig holds settings specific to the TCP transport.
type TCPConfig struct {
	// AllowRemoteRemove makes sessions honor removeAuthor. Off by default:
	// TCP clients send it on exit but the server has never acted on it.
	AllowRemoteRemove bool `yaml:"allow_remote_remove"`
}

// DashboardConfig controls the terminal renderer.
type DashboardConfig struct {
	// Enabled draws frames to stdout. Entries only age while it runs.
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
}

// HTTPConfig controls the read-only HTTP API, metrics and WebSocket stream.
type HTTPConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	StreamInterval time.Duration `yaml:"stream_interval" validate:"gt=0"`
}

// ClientConfig holds all client-side settings.
type ClientConfig struct {
	Transport string `yaml:"transport" validate:"oneof=tcp grpc"`
	Address   string `yaml:"address" validate:"required,hostname|ip"`
	Port      int    `yaml:"port" validate:"min=1,max=65535"`

	// Name is the display name. Empty means ask on startup.
	Name string `yaml:"name" validate:"excludesall=\r\n"`

	// SendTimeout bounds one gRPC call or TCP write.
	SendTimeout time.Duration `yaml:"send_timeout" validate:"gt=0"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddr, s.Port)
}

// Addr returns the host:port the client connects to.
func (c ClientConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

// HTTPAddr returns the host:port of the HTTP listener.
func (s ServerConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddr, s.HTTP.Port)
}

// Load reads and parses the config file at path. An empty path returns the
// defaults. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks c. Load calls it; callers that change fields afterwards
// (command-line overrides) call it again.
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Transport: TransportTCP,
			Port:      DefaultPort,
			Dashboard: DashboardConfig{
				Enabled:  true,
				Interval: DefaultDashboardInterval,
			},
			HTTP: HTTPConfig{
				Port:           DefaultHTTPPort,
				StreamInterval: DefaultStreamInterval,
			},
		},
		Client: ClientConfig{
			Transport:   TransportTCP,
			Address:     DefaultAddress,
			Port:        DefaultPort,
			SendTimeout: DefaultSendTimeout,
		},
	}
}

var validate = newValidator()

func newValidator() func(*Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML path.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return func(cfg *Config) error {
		if err := v.Struct(cfg); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}

		if cfg.Server.HTTP.Enabled && cfg.Server.HTTP.Port == cfg.Server.Port {
			return fmt.Errorf("server.http.port %d collides with server.port", cfg.Server.HTTP.Port)
		}
		return nil
	}
}

// describe renders one validation failure as "<yaml path>: <reason>".
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:] // drop the root struct name
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %q unknown: want %s", path, fe.Value(), strings.ReplaceAll(fe.Param(), " ", "|"))
	case "min", "max":
		return fmt.Sprintf("%s %v is out of range [1, 65535]", path, fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive", path)
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "excludesall":
		return fmt.Sprintf("%s must not contain line breaks", path)
	default:
		return fmt.Sprintf("%s %v is not a valid %s", path, fe.Value(), fe.Tag())
	}
}
