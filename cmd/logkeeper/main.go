// logkeeper drains guestbook access logs from Kafka into Elasticsearch so
// request traffic stays searchable after the server rotates its own logs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/api"
)

type Config struct {
	LogLevel   string `toml:"logLevel"`
	NumWorkers int    `toml:"numWorkers"`

	Kafka   KafkaConf   `toml:"kafka"`
	Elastic ElasticConf `toml:"elastic"`
}

type KafkaConf struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	GroupID string   `toml:"groupID"`
}

type ElasticConf struct {
	Index string   `toml:"index"`
	Nodes []string `toml:"nodes"`
}

func main() {
	var (
		configPath string
		logLevel   string
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("[logkeeper] shutting down gracefully...")
		cancel()
	}()

	flag.StringVar(&configPath, "config", "cmd/logkeeper/config.toml", "Path to TOML config file")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.Parse()

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Fatalf("[logkeeper] failed to load config file %s: %v", configPath, err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
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

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: cfg.Elastic.Nodes})
	if err != nil {
		log.Fatalf("[logkeeper] failed to create elasticsearch client: %v", err)
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	defer r.Close()

	jobs := make(chan kafka.Message, cfg.NumWorkers*5)
	var wg sync.WaitGroup
	wg.Add(cfg.NumWorkers)
	for workerID := 0; workerID < cfg.NumWorkers; workerID++ {
		go func(id int) {
			defer wg.Done()
			indexWorker(ctx, es, jobs, cfg.Elastic.Index, id)
		}(workerID)
	}

	log.Infof("[logkeeper] draining guestbook access logs from topic %q into index %q", cfg.Kafka.Topic, cfg.Elastic.Index)
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			log.Errorf("[logkeeper] failed to read message from Kafka: %v", err)
			continue
		}

		jobs <- msg
	}

	close(jobs)
	wg.Wait()
}

// indexWorker indexes guestbook access-log entries one message at a time. The
// document ID is derived from the entry so redelivered messages overwrite
// instead of duplicating.
func indexWorker(ctx context.Context, es *elasticsearch.Client, jobs <-chan kafka.Message, index string, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Infof("[logkeeper][worker:%d] context cancelled, exiting", workerID)
			return

		case msg, ok := <-jobs:
			if !ok {
				log.Infof("[logkeeper][worker:%d] jobs channel closed, exiting", workerID)
				return
			}

			var entry api.LogEntry
			if err := json.Unmarshal(msg.Value, &entry); err != nil {
				log.Errorf("[logkeeper][worker:%d] skipping malformed access log entry: %v", workerID, err)
				continue
			}

			res, err := es.Index(
				index,
				strings.NewReader(string(msg.Value)),
				es.Index.WithDocumentID(entry.Service+entry.RequestID),
			)
			if res != nil {
				res.Body.Close()
			}
			if err != nil || (res != nil && res.IsError()) {
				log.Errorf("[logkeeper][worker:%d] failed to index access log for request %s: %v", workerID, entry.RequestID, err)
				continue
			}
			log.Debugf("[logkeeper][worker:%d] indexed %s %s status:%d request_id:%s",
				workerID, entry.Method, entry.Path, entry.StatusCode, entry.RequestID)
		}
	}
}
