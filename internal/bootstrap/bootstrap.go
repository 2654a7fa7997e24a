package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/budget-backend/internal/config"
	"github.com/GregMSThompson/budget-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Location  *time.Location
	Firestore *firestore.Client
	Firebase  *auth.Client
}

// Run builds the shared clients. The returned Bootstrap always carries a logger, even on error.
func Run(cfg *config.Config) (*Bootstrap, error) {
	bs, err := RunStoreOnly(cfg)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(context.Background(), cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	return bs, nil
}

// RunStoreOnly skips Firebase auth, for tooling that talks to Firestore directly.
func RunStoreOnly(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)

	bs.Location, err = cfg.Location()
	if err != nil {
		return bs, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Error("failed to close firestore client", "error", err)
		}
	}
}
