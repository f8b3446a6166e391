package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system settings
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig storefront API settings
type WebConfig struct {
	Host        string `yaml:"host" json:"host"`
	Port        int    `yaml:"port" json:"port"`
	Secret      string `yaml:"secret" json:"secret"`
	MaxUploadMB int64  `yaml:"max_upload_mb" json:"max_upload_mb"`
}

// DBConfig audit database settings
type DBConfig struct {
	Type     string `yaml:"type" json:"type"` // postgres or sqlite
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// StorageConfig profile key-value store settings
type StorageConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LogConfig logging settings
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Storage  StorageConfig `yaml:"storage" json:"storage"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// GetStoragePath resolves the bbolt file, relative paths live under the data dir.
func (c *AppConfig) GetStoragePath() string {
	p := c.Storage.Path
	if p == "" {
		p = "profiles.db"
	}
	if path.IsAbs(p) {
		return p
	}
	return path.Join(c.GetDataDir(), p)
}

// MaxUploadBytes is the per-file upload ceiling.
func (c *AppConfig) MaxUploadBytes() int64 {
	if c.Web.MaxUploadMB <= 0 {
		return 32 << 20
	}
	return c.Web.MaxUploadMB << 20
}

// BodyLimit is the request body ceiling in echo's size notation. It leaves
// room for the three media files plus the license packages of a form and
// never drops below 1M.
func (c *AppConfig) BodyLimit() string {
	mb := 8 * (c.MaxUploadBytes() >> 20)
	if mb < 1 {
		mb = 1
	}
	return fmt.Sprintf("%dM", mb)
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

func setEnvValue(name string, val *string) {
	v := os.Getenv(name)
	if v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	v := os.Getenv(name)
	if v != "" {
		*val = cast.ToBool(strings.TrimSpace(v))
	}
}

func setEnvIntValue(name string, val *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := cast.ToIntE(strings.TrimSpace(v)); err == nil {
		*val = n
	}
}

func setEnvInt64Value(name string, val *int64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := cast.ToInt64E(strings.TrimSpace(v)); err == nil {
		*val = n
	}
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "beatstore",
		Location: "America/Argentina/Buenos_Aires",
		Workdir:  "/var/beatstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        8080,
		Secret:      "9b6de5cc-0731-4b1a-8d3e-1f2c7a9e4d10",
		MaxUploadMB: 32,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "beatstore",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  20,
		IdleConn: 5,
		Debug:    false,
	},
	Storage: StorageConfig{
		Path: "profiles.db",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/beatstore/logs/beatstore.log",
	},
}

// LoadConfig reads cfile when present, falling back to DefaultAppConfig,
// then applies BEATSTORE_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	setEnvValue("BEATSTORE_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("BEATSTORE_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("BEATSTORE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("BEATSTORE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("BEATSTORE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("BEATSTORE_WEB_SECRET", &cfg.Web.Secret)
	setEnvInt64Value("BEATSTORE_WEB_MAX_UPLOAD_MB", &cfg.Web.MaxUploadMB)

	setEnvValue("BEATSTORE_DB_TYPE", &cfg.Database.Type)
	setEnvValue("BEATSTORE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("BEATSTORE_DB_PORT", &cfg.Database.Port)
	setEnvValue("BEATSTORE_DB_NAME", &cfg.Database.Name)
	setEnvValue("BEATSTORE_DB_USER", &cfg.Database.User)
	setEnvValue("BEATSTORE_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("BEATSTORE_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("BEATSTORE_STORAGE_PATH", &cfg.Storage.Path)

	setEnvValue("BEATSTORE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("BEATSTORE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("BEATSTORE_LOGGER_FILENAME", &cfg.Logger.Filename)

	cfg.initDirs()
	return &cfg, nil
}
