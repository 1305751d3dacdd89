package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filevault/pkg/app"
	"filevault/pkg/config"
	"filevault/pkg/server"
	"filevault/pkg/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fv-server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	// 1. Flags + Config
	flags := pflag.NewFlagSet("fv-server", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default is ./.fv/config.yaml or $HOME/.fv/config.yaml)")
	flags.String("addr", "", "gRPC listen address (server.addr)")
	flags.String("metrics-addr", "", "Prometheus /metrics listen address, empty string disables it (server.metrics_addr)")
	flags.Bool("no-reaper", false, "do not run the periodic reaper")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	if err := config.Load(*cfgFile); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	for key, name := range map[string]string{
		"server.addr":         "addr",
		"server.metrics_addr": "metrics-addr",
	} {
		if f := flags.Lookup(name); f.Changed {
			viper.Set(key, f.Value.String())
		}
	}
	if _, err := config.SetupLogger(viper.GetString("log.level"), viper.GetString("log.format")); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Init Core Application
	application, err := app.NewApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer application.Close()
	slog.Info("filevault core initialized", slog.String("repo", application.RepoPath))

	// 3. Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		application.Metrics,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 4. gRPC
	addr := viper.GetString("server.addr")
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	grpcServer := server.New(service.NewFileService(application.Vault), application.Metrics)
	// 开启反射，grpcurl 可以直接调试
	reflection.Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("gRPC server listening", slog.String("addr", addr))
		return grpcServer.Serve(lis)
	})

	// 5. /metrics
	var metricsServer *http.Server
	if maddr := viper.GetString("server.metrics_addr"); maddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		metricsServer = &http.Server{Addr: maddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			slog.Info("metrics endpoint listening", slog.String("addr", maddr))
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	// 6. 周期回收
	if noReaper, _ := flags.GetBool("no-reaper"); !noReaper {
		g.Go(func() error {
			return application.Vault.Reaper().Run(gctx)
		})
	}

	// 7. Graceful Shutdown: 信号或任一组件失败
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		grpcServer.GracefulStop()
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
