package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"filevault/pkg/app"
	"filevault/pkg/client"
	"filevault/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	serverAddr string

	// 全局应用实例，供本地模式的子命令使用
	FV *app.App
	// API 是子命令统一使用的文件接口 (本地或远程)
	API fileAPI
)

// localOnly 标记只能在本地仓库执行的命令
const localOnly = "local-only"

var rootCmd = &cobra.Command{
	Use:          "fv",
	Short:        "FileVault: content-addressed file store with deduplication",
	SilenceUsage: true,
	// PersistentPreRunE 会在所有子命令执行前运行
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init 负责创建环境，跳过依赖检查
		if cmd.Name() == "init" {
			return nil
		}

		if _, err := config.SetupLogger(viper.GetString("log.level"), viper.GetString("log.format")); err != nil {
			return err
		}

		// 远程模式：所有支持的命令走 gRPC
		if serverAddr != "" {
			if _, ok := cmd.Annotations[localOnly]; ok {
				return fmt.Errorf("%s only works against a local repository", cmd.Name())
			}
			c, err := client.NewFVClient(serverAddr)
			if err != nil {
				return err
			}
			API = &remoteAPI{c: c}
			return nil
		}

		var err error
		FV, err = app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize filevault: %w\n(Did you run 'fv init'?)", err)
		}
		API = newLocalAPI(FV.Vault)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if API != nil {
			if err := API.Close(); err != nil {
				return err
			}
			API = nil
		}
		if FV != nil {
			err := FV.Close()
			FV = nil
			return err
		}
		return nil
	},
}

// Execute 是入口，Ctrl-C 会取消正在进行的上传
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.fv/config.yaml or $HOME/.fv/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "talk to a running fv-server at this address instead of the local repository")

	// 这样用户既可以在 yaml 里写，也可以用 flag 覆盖
	rootCmd.PersistentFlags().String("storage-path", "", "Directory to store objects")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	for key, flag := range map[string]string{
		"storage.path": "storage-path",
		"log.level":    "log-level",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Println("Failed to bind flag:", err)
			os.Exit(1)
		}
	}
}

// initConfig 读取配置文件和环境变量
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
}
