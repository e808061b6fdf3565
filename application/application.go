package application

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lk2023060901/danmu-tl-go/internal/network/codec"
	"github.com/lk2023060901/danmu-tl-go/internal/network/router"
	zlog "github.com/lk2023060901/danmu-tl-go/pkg/log"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// ConfigPathEnv names the environment variable that overrides the config file path.
const ConfigPathEnv = "TL_CONFIG_FILE_PATH"

// Application is the runtime container of a TL payload process.
// It owns configuration, the global logger, the payload codec and the update router.
type Application struct {
	reg    *tl.Registry
	cfg    *codec.Config
	codec  codec.Codec
	router router.Router
}

// New creates an Application that decodes against reg.
func New(reg *tl.Registry) *Application {
	return &Application{reg: reg}
}

// Run loads configuration and builds the codec pipeline.
//
// The config file is resolved with the following priority:
//  1. Default: no file, built-in defaults
//  2. Env: TL_CONFIG_FILE_PATH
//  3. Argument: configPath
func (a *Application) Run(configPath string, opts router.Options) error {
	if a.reg == nil {
		return merr.WrapErrParameterMissing("registry", "application")
	}
	if a.codec != nil {
		return merr.WrapErrServiceInternal("application already running")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.initLogging(); err != nil {
		return err
	}

	c, err := codec.New(a.reg, cfg.Codec)
	if err != nil {
		return errors.Wrap(err, "build codec")
	}
	a.codec = c
	a.router = router.New(c, a.reg, opts)

	zlog.Info("application started",
		zlog.FieldComponent("application"),
		zap.String("config", resolvedPath(configPath)))
	return nil
}

// Config returns the loaded configuration, nil before Run.
func (a *Application) Config() *codec.Config {
	return a.cfg
}

// Codec returns the payload codec, nil before Run.
func (a *Application) Codec() codec.Codec {
	return a.codec
}

// Router returns the update router, nil before Run.
func (a *Application) Router() router.Router {
	return a.router
}

// Close releases the codec worker pool and flushes the logger.
func (a *Application) Close() {
	if a.codec != nil {
		a.codec.Close()
		a.codec = nil
	}
	_ = zlog.Sync()
}

func resolvedPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	return strings.TrimSpace(os.Getenv(ConfigPathEnv))
}

// loadConfig resolves the config file path and loads it via codec.LoadConfig.
func loadConfig(configPath string) (*codec.Config, error) {
	path := resolvedPath(configPath)
	if path == "" {
		return &codec.Config{
			Log:   zlog.Config{Level: "info", Format: "json"},
			Codec: codec.DefaultOptions(),
		}, nil
	}
	return codec.LoadConfig(path)
}

// initLogging replaces the process-wide logger with the configured one.
func (a *Application) initLogging() error {
	logger, props, err := zlog.InitLogger(&a.cfg.Log)
	if err != nil {
		return merr.WrapErrParameterInvalidMsg("init logger: %s", err.Error())
	}
	zlog.ReplaceGlobals(logger, props)
	return nil
}
