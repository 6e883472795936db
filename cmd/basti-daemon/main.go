// Command basti-daemon runs one node of the task-execution cluster: the
// worker pool always, and the HTTP API unless disabled. Configuration is
// entirely environment-driven (spec.md §6); there is no argument-parsing
// CLI front-end, an explicit non-goal of this repo (see SPEC_FULL.md §5–9).
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/satoqz/basti/internal/api"
	"github.com/satoqz/basti/internal/ops"
	"github.com/satoqz/basti/internal/store"
	"github.com/satoqz/basti/internal/task"
	"github.com/satoqz/basti/internal/worker"
	"github.com/satoqz/basti/internal/worker/metrics"
)

const (
	defaultListen      = "127.0.0.1:1337"
	defaultWorkerCount = 3
	etcdDialTimeout    = 3 * time.Second
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	etcdClient, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.etcdEndpoints,
		DialTimeout: etcdDialTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to etcd")
	}
	defer etcdClient.Close()

	kv := store.NewEtcdClient(etcdClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	node, err := worker.New(kv,
		worker.WithName(cfg.name),
		worker.WithWorkerCount(cfg.workerCount),
		worker.WithMetrics(metrics.NewBasicProvider()),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to construct worker node")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := node.Run(ctx); err != nil {
			log.WithError(err).Error("worker node exited")
		}
	}()

	var httpServer *http.Server
	if !cfg.noAPI {
		server := api.NewServer(ops.New(kv), logrus.NewEntry(log).WithField("component", "api"))
		httpServer = &http.Server{Addr: cfg.listen, Handler: server.Handler()}

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.WithField("addr", cfg.listen).Info("api listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("api server exited")
			}
		}()
	}

	<-ctx.Done()
	log.Info("shutting down")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("api server shutdown did not complete cleanly")
		}
	}

	wg.Wait()
}

type daemonConfig struct {
	name          task.WorkerName
	workerCount   int
	noAPI         bool
	listen        string
	etcdEndpoints []string
}

func loadConfig() (daemonConfig, error) {
	name := os.Getenv("BASTID_NAME")
	if name == "" {
		return daemonConfig{}, errors.New("BASTID_NAME is required")
	}

	rawEtcd := os.Getenv("BASTID_ETCD")
	if rawEtcd == "" {
		return daemonConfig{}, errors.New("BASTID_ETCD is required")
	}
	endpoints := strings.Split(rawEtcd, ",")

	workerCount := defaultWorkerCount
	if raw := os.Getenv("BASTID_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return daemonConfig{}, errors.New("BASTID_WORKERS must be an integer")
		}
		workerCount = n
	}

	listen := os.Getenv("BASTID_LISTEN")
	if listen == "" {
		listen = defaultListen
	}

	noAPI := isTruthy(os.Getenv("BASTID_NO_API"))

	return daemonConfig{
		name:          task.WorkerName(name),
		workerCount:   workerCount,
		noAPI:         noAPI,
		listen:        listen,
		etcdEndpoints: endpoints,
	}, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
