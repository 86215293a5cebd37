package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/precieux0/instagram-repo2/internal/adapters/httpapi"
	metricsadapter "github.com/precieux0/instagram-repo2/internal/adapters/metrics"
	"github.com/precieux0/instagram-repo2/internal/adapters/platform/gateway"
	statusadapter "github.com/precieux0/instagram-repo2/internal/adapters/render/status"
	"github.com/precieux0/instagram-repo2/internal/adapters/repo/jsonstate"
	chainstore "github.com/precieux0/instagram-repo2/internal/adapters/session/chain"
	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/precieux0/instagram-repo2/internal/config"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

type app struct {
	cfg            config.Config
	logger         *slog.Logger
	httpClient     *http.Client
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp(configPath string, logOutput io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &app{
		cfg:            cfg,
		logger:         logger,
		httpClient:     http.DefaultClient,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

// runtime is everything `run` starts: the bot handle and the monitoring
// server that shares it.
type runtime struct {
	bot    *application.Bot
	server *httpapi.Server
}

func (a *app) wireRuntime(ctx context.Context) (*runtime, error) {
	botCfg, err := a.cfg.BotConfig()
	if err != nil {
		return nil, err
	}
	if err := botCfg.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}

	repo, err := jsonstate.NewRepository(a.cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("wire counters repository: %w", err)
	}

	sessions, err := chainstore.NewPassFirstWithFileFallback(a.cfg.SessionsDir(), botCfg.Credentials.Username)
	if err != nil {
		return nil, fmt.Errorf("wire session store chain: %w", err)
	}

	client, err := gateway.NewClient(gateway.Config{
		BaseURL:           a.cfg.Platform.BaseURL,
		RequestsPerSecond: a.cfg.Platform.RequestsPerSecond,
		RequestTimeout:    a.cfg.Platform.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("wire platform client: %w", err)
	}

	recorder := metricsadapter.NewRecorder()

	bot, err := application.NewBot(ctx, application.BotDeps{
		Client:   client,
		Counters: repo,
		Sessions: sessions,
		Clock:    ports.SystemClock{},
		Sleeper:  ports.SystemSleeper{},
		Rand:     application.NewRand(rand.Uint64(), rand.Uint64()),
		Metrics:  recorder,
		Logger:   a.logger,
	}, botCfg)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(bot.Status, httpapi.Options{
		Metrics: recorder.Handler(),
		Logger:  a.logger.With("component", "httpapi"),
	})

	return &runtime{
		bot:    bot,
		server: httpapi.NewServer(a.cfg.Listen, router, a.logger.With("component", "httpapi")),
	}, nil
}

// monitorURL turns the listen address into a URL a local client can dial.
func (a *app) monitorURL() string {
	host, port, err := net.SplitHostPort(a.cfg.Listen)
	if err != nil {
		return "http://" + a.cfg.Listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
