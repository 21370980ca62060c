package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/api"
	"github.com/witch49/wedding-invitation/pkg/storage/memdb"
	"github.com/witch49/wedding-invitation/pkg/storage/mongo"
)

type Config struct {
	ServiceName string `toml:"serviceName"`

	HTTPAddr   string `toml:"httpAddr"`
	LogLevel   string `toml:"logLevel"`
	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
}

func main() {
	var (
		configPath string
		httpAddr   string
		logLevel   string
		dev        bool
	)

	flag.StringVar(&configPath, "config", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&httpAddr, "http", "", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.BoolVar(&dev, "dev", false, "Run the server in development mode with in-memory DB.")
	flag.Parse()

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Fatalf("[server] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}

	var (
		sdb     api.Storage
		mongoDB *mongo.Storage
	)

	switch dev {
	case true:
		log.Info("[server] running with in-memory DB")
		sdb = memdb.New()

	case false:
		conf, err := mongo.NewConfig()
		if err != nil {
			log.Fatalf("[server] invalid mongo config: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := mongo.New(ctx, conf)
		if err != nil {
			cancel()
			log.Fatalf("[server] failed to initialize storage instance, DB connection not established: %v", err)
		}
		if err := db.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("[server] DB not responding: %v", err)
		}
		cancel()

		log.Info("[server] connected to mongo")
		mongoDB = db
		sdb = db
	}

	var kw *kafka.Writer
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kw = &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaAddr),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer kw.Close()
		log.Infof("[server] access logs shipped to kafka topic %q", cfg.KafkaTopic)
	}

	a := api.New(cfg.ServiceName, sdb, kw)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: a.Router,
	}

	go func() {
		log.Infof("[server] starting on %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}

	if mongoDB != nil {
		mongoDB.Close(shutdownCtx)
		log.Info("[server] disconnected from DB")
	}
}
