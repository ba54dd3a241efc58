package wire

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/foliate/internal/config"
	"github.com/mithrel/foliate/internal/logging"
	"github.com/mithrel/foliate/internal/store"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      *zap.Logger
	KV       store.KV
	Docs     *store.Documents
	Settings *store.Settings
}

// BuildApp wires dependencies with the provided config. Ephemeral mode
// swaps the sqlite namespace for an in-memory one; nothing survives the
// process then.
func BuildApp(ctx context.Context, v *viper.Viper, ephemeral bool) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	logger, err := logging.New(v.GetString("data_dir"), v.GetString("log.level"))
	if err != nil {
		return nil, err
	}
	var kv store.KV
	if ephemeral {
		kv = store.NewMem()
	} else {
		kv, err = store.OpenSQLite(ctx, config.ResolveDBPath(v))
		if err != nil {
			return nil, err
		}
	}
	return &App{
		Cfg:      v,
		Log:      logger,
		KV:       kv,
		Docs:     store.NewDocuments(kv),
		Settings: store.NewSettingsWithDefaults(kv, config.DefaultSettings(v)),
	}, nil
}

// Close releases the durable store and flushes buffered log output.
func (a *App) Close() error {
	_ = a.Log.Sync()
	return a.KV.Close()
}
