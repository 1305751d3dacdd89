package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"filevault/pkg/app"
	"filevault/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a FileVault repository",
	Long:  `Create .fv/ in the current directory with a default config.yaml, the object directory and the metadata database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoPath := filepath.Join(wd, config.RepoDir)
		out := cmd.OutOrStdout()

		if _, err := os.Stat(filepath.Join(repoPath, "config.yaml")); err == nil {
			fmt.Fprintf(out, "FileVault repository already exists in %s\n", repoPath)
			return nil
		}

		// 1. 目录结构
		if err := os.MkdirAll(filepath.Join(repoPath, "objects"), 0o755); err != nil {
			return fmt.Errorf("failed to create repo directory: %w", err)
		}

		// 2. 写默认配置 (路径以本仓库为准，而不是启动时的默认值)
		viper.Set("storage.path", filepath.Join(repoPath, "objects"))
		viper.Set("database.path", filepath.Join(repoPath, "fv.db"))
		cfgPath, err := config.WriteDefault(repoPath)
		if err != nil {
			return err
		}

		// 3. 打开一次 App，完成数据库迁移
		a, err := app.NewApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.Close(); err != nil {
			return err
		}

		fmt.Fprintf(out, "Initialized empty FileVault repository in %s (config: %s)\n", repoPath, cfgPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
