// Package app 是整个应用程序的依赖容器，按 Viper 配置组装各层
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"filevault/pkg/config"
	"filevault/pkg/dedup"
	"filevault/pkg/events"
	"filevault/pkg/hasher"
	"filevault/pkg/meta"
	"filevault/pkg/metrics"
	"filevault/pkg/storage"
	"filevault/pkg/storage/cache"
	"filevault/pkg/storage/disk"
	"filevault/pkg/storage/s3"
	"filevault/pkg/vault"

	"github.com/juju/clock"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// App 持有所有"单例"服务
type App struct {
	DB         *meta.DB
	Repository *meta.Repository
	Store      storage.Backend
	Bus        *events.Bus
	Metrics    *metrics.Collector
	Vault      *vault.Vault
	RepoPath   string

	closers []io.Closer
}

// NewApp 是工厂函数，它遵循 Viper 的配置，但不知道具体的 CLI 命令
func NewApp(ctx context.Context) (*App, error) {
	a := &App{
		RepoPath: repoPath(),
		Metrics:  metrics.NewCollector(),
	}
	// 任一步失败都释放已经打开的资源
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	// 1. 存储层
	store, err := initStore(ctx, a.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	a.Store = store
	if c, isCloser := store.(io.Closer); isCloser {
		a.closers = append(a.closers, c)
	}

	// 2. 元数据层
	db, err := initDB(ctx)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.Repository = meta.NewRepository(db)

	// 3. 事件
	a.Bus = events.NewBus(slog.Default())
	pub, err := a.initEvents()
	if err != nil {
		return nil, err
	}

	// 4. 摘要算法
	h, err := hasher.New(hasher.Algorithm(viper.GetString("hash.algorithm")))
	if err != nil {
		return nil, err
	}

	// 5. 组装 Vault
	delay := viper.GetDuration("protocol.retry_delay")
	a.Vault = vault.New(a.Repository, a.Store, vault.Options{
		Hasher:    h,
		Publisher: pub,
		Logger:    slog.Default(),
		Metrics:   a.Metrics,
		Retry: dedup.RetryPolicy{
			Attempts: viper.GetInt("protocol.attempts"),
			Delay:    delay,
			MaxDelay: 20 * delay,
			Clock:    clock.WallClock,
		},
		Reaper: dedup.ReaperConfig{
			Interval:    viper.GetDuration("reaper.interval"),
			GracePeriod: viper.GetDuration("reaper.grace_period"),
			BatchSize:   viper.GetInt("reaper.batch_size"),
		},
	})

	ok = true
	return a, nil
}

// Close 按打开的逆序释放资源
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
		a.DB = nil
	}
	return errors.Join(errs...)
}

// repoPath: 使用中的配置文件所在目录，否则是当前目录下的 .fv
func repoPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return filepath.Dir(used)
	}
	wd, _ := os.Getwd()
	return filepath.Join(wd, config.RepoDir)
}

// initStore 按 storage.type 创建后端，配置了 cache.redis_url 时套上存在性缓存
func initStore(ctx context.Context, repoPath string) (storage.Backend, error) {
	var (
		backend storage.Backend
		err     error
	)
	switch storeType := viper.GetString("storage.type"); storeType {
	case "disk", "":
		path := viper.GetString("storage.path")
		if path == "" {
			path = filepath.Join(repoPath, "objects")
		}
		backend, err = disk.NewAdapter(path)
	case "s3":
		backend, err = s3.NewAdapter(ctx, s3.Config{
			Endpoint:        viper.GetString("s3.endpoint"),
			Region:          viper.GetString("s3.region"),
			Bucket:          viper.GetString("s3.bucket"),
			AccessKeyID:     viper.GetString("s3.access_key"),
			SecretAccessKey: viper.GetString("s3.secret_key"),
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storeType)
	}
	if err != nil {
		return nil, err
	}

	redisURL := viper.GetString("cache.redis_url")
	if redisURL == "" {
		return backend, nil
	}
	cached, err := cache.NewCachedBackend(backend, cache.Config{
		RedisURL: redisURL,
		TTL:      viper.GetDuration("cache.ttl"),
	})
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func initDB(ctx context.Context) (*meta.DB, error) {
	return meta.NewDB(ctx, meta.Config{
		Driver:   viper.GetString("database.driver"),
		Path:     viper.GetString("database.path"),
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.dbname"),
		SSLMode:  viper.GetString("database.sslmode"),
		Debug:    viper.GetString("log.level") == "debug",
	})
}

// initEvents 返回 Vault 使用的发布者：进程内 Bus，配置了 events.redis_url 时再扇出到 Redis
func (a *App) initEvents() (events.Publisher, error) {
	redisURL := viper.GetString("events.redis_url")
	if redisURL == "" {
		return a.Bus, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid events redis url: %w", err)
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, client)
	return events.Fanout{a.Bus, events.NewRedisPublisher(client, viper.GetString("events.channel"))}, nil
}
