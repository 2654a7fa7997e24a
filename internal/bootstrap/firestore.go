package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
)

// InitFirestore opens the default database. An empty project id lets the client detect it from
// the environment, which is also how the emulator is picked up locally.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return firestore.NewClient(ctx, projectID)
}
