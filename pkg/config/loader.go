package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RepoDir 是仓库目录名 (配置、元数据库、本地对象)
const RepoDir = ".fv"

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
func Load(cfgFile string) error {
	// 1. 设置默认值 (Defaults)
	setDefaults()

	// 2. 配置搜索路径
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		// 搜索顺序：当前目录 -> ./.fv -> ~/.fv
		viper.AddConfigPath(".")
		viper.AddConfigPath(RepoDir)
		viper.AddConfigPath(filepath.Join(home, RepoDir))

		viper.SetConfigType("yaml")
		viper.SetConfigName("config") // 找 config.yaml
	}

	// 3. 读取环境变量 (FV_DATABASE_HOST 等)
	viper.SetEnvPrefix("FV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 4. 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		// 没找到配置文件不算错，可能全部来自环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("fatal error config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and env vars")
	} else {
		slog.Debug("using config file", slog.String("path", viper.ConfigFileUsed()))
	}

	return nil
}

func setDefaults() {
	wd, _ := os.Getwd()
	repo := filepath.Join(wd, RepoDir)

	// 数据库默认值：单机 SQLite，放在仓库目录里
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", filepath.Join(repo, "fv.db"))
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")

	// 存储默认值
	viper.SetDefault("storage.type", "disk")
	viper.SetDefault("storage.path", filepath.Join(repo, "objects"))
	viper.SetDefault("s3.region", "us-east-1")

	// 缓存与事件 (redis_url 为空表示关闭)
	viper.SetDefault("cache.ttl", 24*time.Hour)
	viper.SetDefault("events.channel", "filevault:events")

	viper.SetDefault("hash.algorithm", "sha256")

	// 计数事务的冲突重试
	viper.SetDefault("protocol.attempts", 5)
	viper.SetDefault("protocol.retry_delay", 25*time.Millisecond)

	viper.SetDefault("reaper.interval", 5*time.Minute)
	viper.SetDefault("reaper.grace_period", 10*time.Minute)
	viper.SetDefault("reaper.batch_size", 500)

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.metrics_addr", ":9090")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// WriteDefault 在 dir 下生成一份带默认值的 config.yaml，已存在时不覆盖
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	v := viper.New()
	for _, key := range []string{
		"database.driver", "database.path",
		"storage.type", "storage.path",
		"hash.algorithm",
		"log.level", "log.format",
	} {
		v.Set(key, viper.Get(key))
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
