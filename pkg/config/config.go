package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envFile = "./configs/.env"

var (
	once     sync.Once
	instance *Config
)

type Config struct {
	APIAddress string `env:"API_ADDRESS" envDefault:":8080"`

	PostgresAddress  string `env:"POSTGRES_DB_ADDRESS" envDefault:"localhost:5432"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"dopamine"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`

	Timezone           string `env:"DOPAMINE_TIMEZONE" envDefault:"Local"`
	DefaultDailyTarget int    `env:"DOPAMINE_DEFAULT_DAILY_TARGET" envDefault:"500"`
	GoodStartMin       int    `env:"DOPAMINE_GOOD_START_MIN" envDefault:"1"`
	HighPerformanceMin int    `env:"DOPAMINE_HIGH_PERFORMANCE_MIN" envDefault:"3"`

	RemindersEnabled  bool          `env:"DOPAMINE_REMINDERS_ENABLED" envDefault:"true"`
	TaskReminderDelay time.Duration `env:"DOPAMINE_TASK_REMINDER_DELAY" envDefault:"1h"`
	DailyReminderHour int           `env:"DOPAMINE_DAILY_REMINDER_HOUR" envDefault:"20"`
}

// New loads ./configs/.env once and parses the environment into Config.
// A missing env file is fine, variables may come from the process environment.
func New() *Config {
	once.Do(func() {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatal("loading envs error: ", err)
		}
		cfg, err := Parse()
		if err != nil {
			log.Fatal("parsing envs error: ", err)
		}
		instance = cfg
	})
	return instance
}

// Parse reads Config from the current process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("parse env: " + err.Error())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.GoodStartMin < 1:
		return fmt.Errorf("DOPAMINE_GOOD_START_MIN must be positive, got %d", c.GoodStartMin)
	case c.HighPerformanceMin < c.GoodStartMin:
		return fmt.Errorf("DOPAMINE_HIGH_PERFORMANCE_MIN (%d) must not be below DOPAMINE_GOOD_START_MIN (%d)", c.HighPerformanceMin, c.GoodStartMin)
	case c.DefaultDailyTarget < 1:
		return fmt.Errorf("DOPAMINE_DEFAULT_DAILY_TARGET must be positive, got %d", c.DefaultDailyTarget)
	case c.DailyReminderHour < 0 || c.DailyReminderHour > 23:
		return fmt.Errorf("DOPAMINE_DAILY_REMINDER_HOUR must be within 0..23, got %d", c.DailyReminderHour)
	}
	return nil
}

// Location resolves Timezone. "Local" or empty means the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
