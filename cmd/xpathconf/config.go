package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xpathconf/pkg/config/xconf"
	"github.com/omeyang/xpathconf/pkg/observability/xlog"
)

// 输出格式。
const (
	outputText = "text"
	outputJSON = "json"
)

// 默认配置值。
const (
	defaultLogLevel    = "warn"
	defaultLogFormat   = "text"
	defaultMaxSizeMB   = 100
	defaultMaxBackups  = 3
	defaultConcurrency = 4
	maxConcurrency     = 256
)

// appConfig 是配置文件结构。
type appConfig struct {
	Log    logConfig   `koanf:"log"`
	Query  queryConfig `koanf:"query"`
	Output string      `koanf:"output"`
}

type logConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

type queryConfig struct {
	Names       []string `koanf:"names"`
	Concurrency int      `koanf:"concurrency"`
}

func defaultNames() []string {
	return []string{"LINK_MAX", "PATH_MAX", "NAME_MAX", "PIPE_BUF"}
}

func defaultConfig() appConfig {
	return appConfig{
		Log: logConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
		},
		Query:  queryConfig{Concurrency: defaultConcurrency},
		Output: outputText,
	}
}

// loadConfig 加载配置文件，path 为空时返回默认配置。
// 文件中缺省的键保留默认值。
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		c, err := xconf.New(path)
		if err != nil {
			return appConfig{}, err
		}
		if err := c.Unmarshal("", &cfg); err != nil {
			return appConfig{}, err
		}
	}
	if len(cfg.Query.Names) == 0 {
		cfg.Query.Names = defaultNames()
	}
	return cfg, nil
}

// resolveConfig 加载配置并应用命令行覆盖，结果经过校验。
func resolveConfig(cmd *cli.Command) (appConfig, error) {
	cfg, err := loadConfig(cmd.String(flagConfig))
	if err != nil {
		return appConfig{}, &usageError{err: err}
	}
	if cmd.IsSet(flagLogLevel) {
		cfg.Log.Level = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagOutput) {
		cfg.Output = cmd.String(flagOutput)
	}
	if err := cfg.validate(); err != nil {
		return appConfig{}, &usageError{err: err}
	}
	return cfg, nil
}

func (c *appConfig) validate() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case "":
		c.Output = outputText
	case outputText, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	if c.Query.Concurrency <= 0 || c.Query.Concurrency > maxConcurrency {
		return fmt.Errorf("query.concurrency %d out of range [1, %d]", c.Query.Concurrency, maxConcurrency)
	}
	if _, err := xlog.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// newLogger 按配置构建日志，log.file 非空时输出到轮转文件。
func newLogger(c logConfig, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(c.Level).
		SetFormat(c.Format)
	if c.File != "" {
		b.SetRotation(c.File, c.MaxSizeMB, c.MaxBackups)
	}
	return b.Build()
}
