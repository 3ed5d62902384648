package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the sysreport configuration.
type Config struct {
	Report    ReportConfig    `mapstructure:"report"`
	Collector CollectorConfig `mapstructure:"collector"`
	Firewall  FirewallConfig  `mapstructure:"firewall"`
	Mail      MailConfig      `mapstructure:"mail"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Log       LogConfig       `mapstructure:"log"`
}

type ReportConfig struct {
	Dir           string `mapstructure:"dir"`
	RetentionDays int    `mapstructure:"retention_days"`
}

type CollectorConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	CPUSample   time.Duration `mapstructure:"cpu_sample"`
}

// FirewallConfig is the command used to query the firewall state. Output
// containing EnabledToken means the firewall is on.
type FirewallConfig struct {
	Command      string        `mapstructure:"command"`
	Args         []string      `mapstructure:"args"`
	EnabledToken string        `mapstructure:"enabled_token"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// MailConfig holds the relay and addresses used to deliver reports.
type MailConfig struct {
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Sender    string        `mapstructure:"sender"`
	Password  string        `mapstructure:"password"`
	Recipient string        `mapstructure:"recipient"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ScheduleConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and environment. A missing config
// file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sysreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sysreport")
	}

	setDefaults(v, runtime.GOOS)

	v.SetEnvPrefix("SYSREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, goos string) {
	v.SetDefault("report.dir", "reports")
	v.SetDefault("report.retention_days", 0)
	v.SetDefault("collector.concurrency", 4)
	v.SetDefault("collector.cpu_sample", "1s")
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.sender", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.recipient", "")
	v.SetDefault("mail.timeout", "30s")
	v.SetDefault("schedule.interval", "24h")
	v.SetDefault("log.level", "info")

	fw := defaultFirewall(goos)
	v.SetDefault("firewall.command", fw.Command)
	v.SetDefault("firewall.args", fw.Args)
	v.SetDefault("firewall.enabled_token", fw.EnabledToken)
	v.SetDefault("firewall.timeout", "5s")
}

// defaultFirewall returns the status query for goos.
func defaultFirewall(goos string) FirewallConfig {
	switch goos {
	case "windows":
		return FirewallConfig{
			Command:      "netsh",
			Args:         []string{"advfirewall", "show", "allprofiles", "state"},
			EnabledToken: "ON",
		}
	case "darwin":
		return FirewallConfig{
			Command:      "/usr/libexec/ApplicationFirewall/socketfilterfw",
			Args:         []string{"--getglobalstate"},
			EnabledToken: "enabled",
		}
	default:
		return FirewallConfig{
			Command:      "ufw",
			Args:         []string{"status"},
			EnabledToken: "Status: active",
		}
	}
}
