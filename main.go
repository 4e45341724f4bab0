package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	dispatcherx "github.com/pawquote/quote-agent/agent/dispatcher"
	quotex "github.com/pawquote/quote-agent/agent/quote"
	statex "github.com/pawquote/quote-agent/agent/state"
	configx "github.com/pawquote/quote-agent/pkg/config"
	httpserverx "github.com/pawquote/quote-agent/pkg/httpserver"
	_ "github.com/pawquote/quote-agent/pkg/logger/autoload"
)

type AppConfig struct {
	// StoreBackend selects session persistence: "memory" or "upstash".
	StoreBackend    string        `envconfig:"STORE_BACKEND" default:"memory"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	catalog, err := catalogx.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}

	store := newStore(appCfg.StoreBackend)

	quoteCfg := configx.MustNew[quotex.Config]("QUOTE")
	issuer := quotex.NewIssuer(*quoteCfg)

	dispatcher, err := dispatcherx.New(store, catalog, issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("dispatcher init failed")
	}

	serverCfg := configx.MustNew[httpserverx.Config]("HTTP")
	server := httpserverx.New(*serverCfg, httpserverx.NewHandler(dispatcher))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := server.Start()
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

func newStore(backend string) statex.Store {
	switch backend {
	case "upstash":
		cfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH")
		store, err := statex.NewUpstashRedisStore(*cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("upstash store init failed")
		}
		return store
	default:
		cfg := configx.MustNew[statex.MemoryStoreConfig]("MEMSTORE")
		return statex.NewMemoryStore(*cfg)
	}
}
