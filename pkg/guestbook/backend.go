package guestbook

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/storage"
	"github.com/witch49/wedding-invitation/pkg/storage/mongo"
	"github.com/witch49/wedding-invitation/pkg/storage/offline"
	"github.com/witch49/wedding-invitation/pkg/storage/remote"
)

// BackendConfig selects the data-access strategy for the lifetime of the
// session. Kind is one of "remote" or "mongo"; anything else, or a mongo
// backend that is unconfigured or unreachable, falls back to the bundled
// offline dataset.
type BackendConfig struct {
	Kind       string `toml:"kind"`
	APIBaseURL string `toml:"apiBaseURL"`
}

// SelectBackend resolves the strategy once at startup. It never fails: the
// offline dataset is the floor every configuration degrades to.
func SelectBackend(ctx context.Context, conf BackendConfig) storage.Backend {
	switch conf.Kind {
	case "remote":
		if conf.APIBaseURL == "" {
			log.Warn("[guestbook] remote backend selected without apiBaseURL, using offline dataset")
			return offline.New()
		}
		log.Infof("[guestbook] using remote backend at %s", conf.APIBaseURL)
		return remote.New(conf.APIBaseURL)

	case "mongo":
		mconf, err := mongo.NewConfig()
		if err != nil {
			log.Warnf("[guestbook] mongo backend unconfigured, using offline dataset: %v", err)
			return offline.New()
		}
		db, err := mongo.New(ctx, mconf)
		if err != nil {
			log.Warnf("[guestbook] mongo backend unreachable, using offline dataset: %v", err)
			return offline.New()
		}
		if err := db.Ping(ctx); err != nil {
			log.Warnf("[guestbook] mongo backend not responding, using offline dataset: %v", err)
			return offline.New()
		}
		log.Info("[guestbook] using mongo backend")
		return db

	default:
		log.Info("[guestbook] no live backend configured, using offline dataset")
		return offline.New()
	}
}
