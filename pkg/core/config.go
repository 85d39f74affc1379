package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimeoutConfig configures timeouts for various operations.
type TimeoutConfig struct {
	// RequestTimeout is the overall timeout for HTTP requests.
	RequestTimeout time.Duration `validate:"gt=0"`

	// ComponentMount is the timeout for component Mount() calls.
	ComponentMount time.Duration `validate:"gt=0"`

	// ComponentEvent is the timeout for HandleEvent() calls.
	ComponentEvent time.Duration `validate:"gt=0"`

	// WebSocketRead is the read timeout for WebSocket connections.
	WebSocketRead time.Duration `validate:"gt=0"`

	// WebSocketWrite is the write timeout for WebSocket connections.
	WebSocketWrite time.Duration `validate:"gt=0"`

	// SessionCleanup is the interval for cleaning up inactive sessions.
	SessionCleanup time.Duration `validate:"gt=0"`

	// GracefulShutdown is the timeout for graceful shutdown.
	GracefulShutdown time.Duration `validate:"gt=0"`
}

// DefaultTimeoutConfig returns default timeouts.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		RequestTimeout:   30 * time.Second,
		ComponentMount:   5 * time.Second,
		ComponentEvent:   3 * time.Second,
		WebSocketRead:    60 * time.Second,
		WebSocketWrite:   10 * time.Second,
		SessionCleanup:   5 * time.Minute,
		GracefulShutdown: 30 * time.Second,
	}
}

// RelaxedTimeoutConfig returns more relaxed timeouts for development.
func RelaxedTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		RequestTimeout:   120 * time.Second,
		ComponentMount:   30 * time.Second,
		ComponentEvent:   30 * time.Second,
		WebSocketRead:    300 * time.Second,
		WebSocketWrite:   30 * time.Second,
		SessionCleanup:   30 * time.Minute,
		GracefulShutdown: 10 * time.Second,
	}
}

// SecurityConfig configures security settings.
type SecurityConfig struct {
	// AllowedOrigins for WebSocket connections besides same-origin.
	AllowedOrigins []string `validate:"dive,required"`

	// InsecureDevMode disables origin checks (ONLY for development!).
	InsecureDevMode bool

	// SecureHeaders enables security response headers.
	SecureHeaders bool
}

// DefaultSecurityConfig returns secure default configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		SecureHeaders: true,
	}
}

// DevelopmentSecurityConfig returns relaxed config for development.
func DevelopmentSecurityConfig() SecurityConfig {
	return SecurityConfig{
		AllowedOrigins:  []string{"*"},
		InsecureDevMode: true,
	}
}

// Config combines all server settings.
type Config struct {
	// Address is the listen address, e.g. ":3000".
	Address string `validate:"required"`
	Debug   bool

	// LogLevel and LogFormat select the logging backend.
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text console"`

	// Codec names the wire codec for live sessions.
	Codec string `validate:"oneof=json msgpack phoenix"`

	// ContentFile optionally points at a YAML or JSON hero content file.
	ContentFile string

	MaxMessageSize int64 `validate:"gt=0"`
	MaxConnections int   `validate:"gte=0"`

	// EventRate caps client events per second per session, refilling a
	// bucket of EventBurst. Zero disables the limit.
	EventRate  float64 `validate:"gte=0"`
	EventBurst int     `validate:"required_with=EventRate,gte=0"`

	Timeouts TimeoutConfig
	Security SecurityConfig
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Address:        ":3000",
		LogLevel:       "info",
		LogFormat:      "json",
		Codec:          "json",
		MaxMessageSize: 64 * 1024,
		MaxConnections: 10000,
		EventRate:      120,
		EventBurst:     60,
		Timeouts:       DefaultTimeoutConfig(),
		Security:       DefaultSecurityConfig(),
	}
}

// DevelopmentConfig returns configuration optimized for development.
func DevelopmentConfig() Config {
	return Config{
		Address:        ":3000",
		Debug:          true,
		LogLevel:       "debug",
		LogFormat:      "console",
		Codec:          "json",
		MaxMessageSize: 1024 * 1024,
		MaxConnections: 1000,
		Timeouts:       RelaxedTimeoutConfig(),
		Security:       DevelopmentSecurityConfig(),
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Security.InsecureDevMode && !c.Debug {
		return ErrInsecureInProduction
	}
	return nil
}

// Configuration errors.
var (
	ErrInvalidConfig        = configError("invalid configuration")
	ErrInsecureInProduction = configError("InsecureDevMode requires Debug")
)

type configError string

func (e configError) Error() string { return string(e) }

// Environment variables read by ApplyEnv.
const (
	EnvAddress        = "LAUNCHPAD_ADDR"
	EnvDebug          = "LAUNCHPAD_DEBUG"
	EnvLogLevel       = "LAUNCHPAD_LOG_LEVEL"
	EnvLogFormat      = "LAUNCHPAD_LOG_FORMAT"
	EnvCodec          = "LAUNCHPAD_CODEC"
	EnvContentFile    = "LAUNCHPAD_CONTENT"
	EnvAllowedOrigins = "LAUNCHPAD_ALLOWED_ORIGINS"
)

// ApplyEnv overrides fields of c from the environment. lookup is usually
// os.LookupEnv. Unset variables leave fields untouched.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddress); ok && v != "" {
		c.Address = v
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvCodec); ok && v != "" {
		c.Codec = strings.ToLower(v)
	}
	if v, ok := lookup(EnvContentFile); ok {
		c.ContentFile = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Security.AllowedOrigins = origins
	}
	return nil
}
