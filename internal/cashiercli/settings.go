// Package cashiercli implements the cashier's terminal client for the cash drawer ledger.
package cashiercli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/client/sessioncache"
	"github.com/spf13/viper"
)

// Settings configure the cashier client. They are read from CASHIER_* environment variables.
type Settings struct {
	ServerURL    string
	Token        string
	EmployeeID   string
	StateFile    string
	RedisAddr    string
	PollInterval time.Duration
	Currency     string
}

// LoadSettings reads settings from v, which should have no prefix configured yet.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	v.SetEnvPrefix("CASHIER")
	v.AutomaticEnv()

	v.SetDefault("SERVER_URL", "http://localhost:8080/api/v1")
	v.SetDefault("STATE_FILE", defaultStateFile())
	v.SetDefault("POLL_INTERVAL", sessioncache.DefaultPollInterval.String())
	v.SetDefault("CURRENCY", "COP")

	s := &Settings{
		ServerURL:  strings.TrimRight(v.GetString("SERVER_URL"), "/"),
		Token:      v.GetString("TOKEN"),
		EmployeeID: strings.TrimSpace(v.GetString("EMPLOYEE_ID")),
		StateFile:  v.GetString("STATE_FILE"),
		RedisAddr:  v.GetString("REDIS_ADDR"),
		Currency:   strings.ToUpper(v.GetString("CURRENCY")),
	}

	interval, err := time.ParseDuration(v.GetString("POLL_INTERVAL"))
	if err != nil || interval <= 0 {
		interval = sessioncache.DefaultPollInterval
	}
	s.PollInterval = interval

	if s.Token == "" {
		return nil, errors.New("CASHIER_TOKEN is not set")
	}
	if s.EmployeeID == "" {
		return nil, errors.New("CASHIER_EMPLOYEE_ID is not set")
	}
	return s, nil
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".cashier-session.json"
	}
	return filepath.Join(dir, "cashdrawer", "session.json")
}
