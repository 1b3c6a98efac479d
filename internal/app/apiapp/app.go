package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MadeInMinsk96/loveblr/internal/config"
	s3infra "github.com/MadeInMinsk96/loveblr/internal/infra/s3"
	tginfra "github.com/MadeInMinsk96/loveblr/internal/infra/telegram"
	pgrepo "github.com/MadeInMinsk96/loveblr/internal/repo/postgres"
	redrepo "github.com/MadeInMinsk96/loveblr/internal/repo/redis"
	candidatesvc "github.com/MadeInMinsk96/loveblr/internal/services/candidates"
	likessvc "github.com/MadeInMinsk96/loveblr/internal/services/likes"
	mediasvc "github.com/MadeInMinsk96/loveblr/internal/services/media"
	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	profileCache := redrepo.NewProfileCacheRepo(redisClient, cfg.Redis.ProfileCacheTTL)

	profileRepo := pgrepo.NewProfileRepo(pool)
	likeRepo := pgrepo.NewLikeRepo(pool)
	candidateRepo := pgrepo.NewCandidateRepo(pool)

	profileService := profilesvc.NewService(profileRepo)
	profileService.AttachCache(profileCache)
	candidateService := candidatesvc.NewService(candidateRepo, profileService)

	var notifier likessvc.MatchNotifier
	if cfg.Bot.Token == "" {
		log.Warn("bot token is empty, match notifications disabled")
	} else if n, err := tginfra.NewMatchNotifier(cfg.Bot.Token, log); err != nil {
		log.Warn("telegram init failed, match notifications disabled", zap.Error(err))
	} else {
		notifier = n
	}

	likeService := likessvc.NewService(likessvc.Dependencies{
		Pool:      pool,
		LikeStore: likeRepo,
		Profiles:  profileRepo,
		Notifier:  notifier,
	})

	var mediaService *mediasvc.Service
	if s3Client, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		storage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket, s3infra.BaseURL(s3infra.Config{
			Endpoint: cfg.S3.Endpoint,
			UseSSL:   cfg.S3.UseSSL,
		}))
		mediaService = mediasvc.NewService(storage)
	}

	RegisterRoutes(r, Dependencies{
		ProfileService:   profileService,
		CandidateService: candidateService,
		LikeService:      likeService,
		MediaService:     mediaService,
		MaxPhotoBytes:    cfg.Media.MaxPhotoBytes,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
