package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/cache"
	"gopherblog/internal/config"
	"gopherblog/internal/model"
	mysqlClient "gopherblog/internal/platform/mysql"
	postgresClient "gopherblog/internal/platform/postgres"
	rabbitmqClient "gopherblog/internal/platform/rabbitmq"
	redisClient "gopherblog/internal/platform/redis"
	"gopherblog/internal/repository"
	"gopherblog/internal/repository/memory"
	"gopherblog/internal/worker"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger

	// DB is nil when the memory driver is selected.
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	ActivityWorker *worker.ActivityPersistWorker

	Users    *appsvc.UserService
	Auth     *appsvc.AuthService
	Posts    *appsvc.PostService
	Comments *appsvc.CommentService
	Activity *appsvc.ActivityLog

	StartedAt time.Time
}

type stores struct {
	users      appsvc.UserStore
	posts      appsvc.PostStore
	comments   appsvc.CommentStore
	activities appsvc.ActivityStore
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return Build(ctx, cfg, cfg.NewLogger(os.Stdout))
}

// Build opens the configured backends and wires the services. On error every
// resource opened so far is released.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
	}

	st, err := a.openStores(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var postCache appsvc.PostCache
	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		postCache = cache.NewPostCache(a.Redis, cfg.PostCacheTTL())
	}

	var publisher appsvc.ActivityPublisher
	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		publisher = rabbitmqClient.NewActivityPublisher(a.MQConn, cfg.RabbitMQ.ActivityQueue)

		a.ActivityWorker = worker.NewActivityPersistWorker(a.MQConn, st.activities, cfg.RabbitMQ.ActivityQueue, logger)
		if err := a.ActivityWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start activity worker failed: %w", err)
		}
	}

	a.Activity = appsvc.NewActivityLog(publisher, st.activities, logger)
	a.Users = appsvc.NewUserService(st.users, cfg.Auth.BcryptCost, a.Activity).
		WithPostCache(st.posts, st.comments, postCache, logger)
	a.Auth = appsvc.NewAuthService(a.Users, cfg.Auth.JWTSecret, cfg.JWTExpiration())
	a.Posts = appsvc.NewPostService(st.posts, postCache, a.Activity, logger)
	a.Comments = appsvc.NewCommentService(st.comments, st.posts, postCache, a.Activity, logger)

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("jwt secret is not configured; register and login will fail")
	}
	logger.Info("application wired",
		"driver", cfg.Database.Driver,
		"redis", cfg.Redis.Enabled,
		"rabbitmq", cfg.RabbitMQ.Enabled,
	)
	return a, nil
}

func (a *App) openStores(ctx context.Context) (*stores, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch a.Config.Database.Driver {
	case config.DriverMemory:
		mem := memory.New()
		return &stores{
			users:      mem.Users(),
			posts:      mem.Posts(),
			comments:   mem.Comments(),
			activities: mem.Activities(),
		}, nil
	case config.DriverPostgres:
		db, err = postgresClient.New(ctx, a.Config.PostgresDSN(), a.Config.Database.Debug)
	default:
		db, err = mysqlClient.New(ctx, a.Config.MySQLDSN(), a.Config.Database.Debug)
	}
	if err != nil {
		return nil, err
	}
	a.DB = db

	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Activity{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	return &stores{
		users:      repository.NewUserRepository(db),
		posts:      repository.NewPostRepository(db),
		comments:   repository.NewCommentRepository(db),
		activities: repository.NewActivityRepository(db),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
