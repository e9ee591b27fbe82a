package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/wordwall/pkg/pipeline"
	"github.com/matzehuels/wordwall/pkg/server"
	"github.com/matzehuels/wordwall/pkg/translate"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// Config keys. Each is also readable from the environment as
// WORDWALL_<KEY> with dots replaced by underscores.
const (
	keyStorageBackend  = "storage.backend"
	keyStoragePath     = "storage.path"
	keyStorageDSN      = "storage.dsn"
	keyStorageDatabase = "storage.database"
	keyCacheRedis      = "cache.redis"
	keyCanvasWidth     = "canvas.width"
	keyCanvasHeight    = "canvas.height"
	keyLayoutAttempts  = "layout.max_attempts"
	keyLayoutSeed      = "layout.seed"
	keyRenderStyle     = "render.style"
	keyRenderTheme     = "render.theme"
	keyTranslateProv   = "translate.provider"
	keyTranslateModel  = "translate.model"
	keyTranslateKey    = "translate.api_key"
	keyTranslateTarget = "translate.target"
	keyServerAddr      = "server.addr"
	keyServerURL       = "server.public_url"
)

var envReplacer = strings.NewReplacer(".", "_")

// settings is the resolved configuration.
type settings struct {
	Storage struct {
		Backend  string
		Path     string
		DSN      string
		Database string
	}
	Cache struct {
		Redis string
	}
	Canvas struct {
		Width  float64
		Height float64
	}
	Layout struct {
		MaxAttempts int
		Seed        uint64
	}
	Render struct {
		Style string
		Theme string
	}
	Translate struct {
		Provider string
		Model    string
		APIKey   string
		Target   string
	}
	Server struct {
		Addr      string
		PublicURL string
	}
}

// loadConfig reads the dotenv file, the config file and the environment.
// A missing config file is not an error; a malformed one is.
func (c *CLI) loadConfig() error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", c.envFile, err)
		}
	}

	v := c.config
	setDefaults(v)

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + appName)
	}

	v.SetEnvPrefix("WORDWALL")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		c.Logger.Debug("using config file", "path", v.ConfigFileUsed())
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyStorageBackend, vocab.BackendFile)
	if dir, err := dataDir(); err == nil {
		v.SetDefault(keyStoragePath, filepath.Join(dir, wordsFile))
	}
	v.SetDefault(keyCanvasWidth, pipeline.DefaultWidth)
	v.SetDefault(keyCanvasHeight, pipeline.DefaultHeight)
	v.SetDefault(keyLayoutSeed, pipeline.DefaultSeed)
	v.SetDefault(keyRenderStyle, pipeline.DefaultStyle)
	v.SetDefault(keyTranslateProv, translate.ProviderOpenAI)
	v.SetDefault(keyTranslateTarget, translate.DefaultTarget)
	v.SetDefault(keyServerAddr, server.DefaultAddr)
}

// bindFlag makes a flag override its config key when set.
func (c *CLI) bindFlag(f *pflag.Flag, key string) {
	if f == nil {
		return
	}
	_ = c.config.BindPFlag(key, f)
}

// bindFlags binds flag/key pairs of one command. Commands sharing a key
// bind in PreRun so that only the running command's flag is consulted.
func (c *CLI) bindFlags(flags *pflag.FlagSet, pairs map[string]string) {
	for name, key := range pairs {
		c.bindFlag(flags.Lookup(name), key)
	}
}

// settings snapshots the current configuration.
func (c *CLI) settings() settings {
	v := c.config
	var s settings
	s.Storage.Backend = v.GetString(keyStorageBackend)
	s.Storage.Path = v.GetString(keyStoragePath)
	s.Storage.DSN = v.GetString(keyStorageDSN)
	s.Storage.Database = v.GetString(keyStorageDatabase)
	s.Cache.Redis = v.GetString(keyCacheRedis)
	s.Canvas.Width = v.GetFloat64(keyCanvasWidth)
	s.Canvas.Height = v.GetFloat64(keyCanvasHeight)
	s.Layout.MaxAttempts = v.GetInt(keyLayoutAttempts)
	s.Layout.Seed = v.GetUint64(keyLayoutSeed)
	s.Render.Style = v.GetString(keyRenderStyle)
	s.Render.Theme = v.GetString(keyRenderTheme)
	s.Translate.Provider = v.GetString(keyTranslateProv)
	s.Translate.Model = v.GetString(keyTranslateModel)
	s.Translate.Target = v.GetString(keyTranslateTarget)
	s.Translate.APIKey = apiKey(v, s.Translate.Provider)
	s.Server.Addr = v.GetString(keyServerAddr)
	s.Server.PublicURL = v.GetString(keyServerURL)
	return s
}

// apiKey prefers the configured key, then the provider's conventional
// environment variable.
func apiKey(v *viper.Viper, provider string) string {
	if k := v.GetString(keyTranslateKey); k != "" {
		return k
	}
	switch provider {
	case translate.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case translate.ProviderGemini:
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GOOGLE_API_KEY")
	}
	return ""
}

func (s settings) backendConfig() vocab.BackendConfig {
	return vocab.BackendConfig{
		Kind:     s.Storage.Backend,
		Path:     s.Storage.Path,
		DSN:      s.Storage.DSN,
		Database: s.Storage.Database,
	}
}

// pipelineOptions returns the configured layout and render defaults.
func (s settings) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:       s.Canvas.Width,
		Height:      s.Canvas.Height,
		Seed:        s.Layout.Seed,
		MaxAttempts: s.Layout.MaxAttempts,
		Style:       s.Render.Style,
		ThemePath:   s.Render.Theme,
	}
}
