package main

import (
    "context"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog/log"

    "github.com/local/contextblog/internal/ai"
    cfgpkg "github.com/local/contextblog/internal/config"
    "github.com/local/contextblog/internal/content"
    "github.com/local/contextblog/internal/dispatcher"
    logpkg "github.com/local/contextblog/internal/logger"
    mpkg "github.com/local/contextblog/internal/metrics"
    "github.com/local/contextblog/internal/statuscheck"
    "github.com/local/contextblog/internal/store"
    web "github.com/local/contextblog/internal/web"
)

func main() {
    // .env is optional
    _ = godotenv.Load()
    cfg := cfgpkg.FromEnv()

    // Init logging
    _ = logpkg.Init(logpkg.Options{
        Service: "contextblog",
        Level: cfg.Logging.Level,
        Pretty: cfg.Logging.Pretty,
        File: cfg.Logging.File,
        MaxSizeMB: cfg.Logging.MaxSizeMB,
        MaxBackups: cfg.Logging.MaxBackups,
        MaxAgeDays: cfg.Logging.MaxAgeDays,
        Compress: cfg.Logging.Compress,
        SendToAxiom: cfg.Axiom.Send && cfg.Axiom.APIKey != "",
        AxiomAPIKey: cfg.Axiom.APIKey,
        AxiomOrgID: cfg.Axiom.OrgID,
        AxiomDataset: cfg.Axiom.Dataset,
        AxiomFlush: cfg.Axiom.FlushInterval,
    })
    defer logpkg.Close()

    mpkg.Init()

    // Credential check is advisory; the service starts either way
    guard := ai.NewGuard(cfg.AI.APIKey)
    guard.LogStartup()

    client := ai.NewClient(ai.ClientOptions{
        BaseURL:        cfg.AI.BaseURL,
        APIKey:         guard.APIKey(),
        Referer:        cfg.AI.Referer,
        Title:          cfg.AI.Title,
        ConnectTimeout: cfg.AI.ConnectTimeout,
    })
    gw := dispatcher.New(dispatcher.Options{
        Guard:     guard,
        Transport: client,
        Chains:    cfg.AI.Chains,
        Timeouts:  dispatcher.Timeouts{Read: cfg.AI.ReadTimeout, ImageRead: cfg.AI.ImageReadTimeout},
    })

    // Redis backs the result cache and blog index; without it the API still serves
    engineOpts := content.Options{Assistant: gw}
    webDeps := web.Dependencies{
        Gateway:          gw,
        NewsDefaultCount: cfg.HTTP.NewsDefaultCount,
        NewsMaxCount:     cfg.HTTP.NewsMaxCount,
    }
    statusOpts := statuscheck.Options{Guard: guard, BaseURL: cfg.AI.BaseURL}

    rdb, err := store.Connect(cfg.Cache.RedisURL)
    if err != nil {
        log.Warn().Err(err).Msg("redis unavailable; result cache and blog index disabled")
    } else {
        defer rdb.Close()
        blogs := store.NewBlogIndex(rdb)
        engineOpts.Blogs = blogs
        webDeps.Blogs = blogs
        statusOpts.Redis = store.Pinger{Client: rdb}
        if cfg.Cache.Enabled {
            engineOpts.Cache = store.NewResultCache(rdb, cfg.Cache.TTL)
        }
    }

    webDeps.Content = content.NewEngine(engineOpts)
    webDeps.Status = statuscheck.New(statusOpts)

    mux := http.NewServeMux()
    web.New(webDeps).RegisterRoutes(mux)

    srv := &http.Server{Addr: ":"+cfg.HTTP.Port, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

    go func(){
        log.Info().Msgf("HTTP server listening on :%s", cfg.HTTP.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatal().Err(err).Msg("http server error")
        }
    }()

    // Graceful shutdown
    stop := make(chan os.Signal, 1)
    signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
    <-stop
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    _ = srv.Shutdown(ctx)
    fmt.Println("shutdown complete")
}
