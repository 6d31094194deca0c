// Package retention enforces the journal's storage window: concerns and
// their generated actions are deleted once they age past the configured
// number of days.
package retention

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lnfurey-oss/pm-exploration/database"
)

const sweepInterval = 12 * time.Hour

// Cutoff returns the oldest createdAt still retained, relative to now.
func Cutoff(now time.Time, retentionDays int) time.Time {
	return now.AddDate(0, 0, -retentionDays)
}

// Run sweeps immediately, then on a fixed interval until ctx is done.
// Call from main in its own goroutine.
func Run(ctx context.Context, retentionDays int) {
	sweep(ctx, retentionDays)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Retention sweeper stopped")
			return
		case <-ticker.C:
			sweep(ctx, retentionDays)
		}
	}
}

func sweep(ctx context.Context, retentionDays int) {
	cutoff := Cutoff(time.Now(), retentionDays)

	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{"createdAt": bson.M{"$lt": cutoff}}

	concernResult, err := database.Collection("concerns").DeleteMany(sweepCtx, filter)
	if err != nil {
		log.Printf("Retention sweep failed on concerns: %v", err)
		return
	}
	actionResult, err := database.Collection("actions").DeleteMany(sweepCtx, filter)
	if err != nil {
		log.Printf("Retention sweep failed on actions: %v", err)
		return
	}

	if concernResult.DeletedCount > 0 || actionResult.DeletedCount > 0 {
		log.Printf("Retention sweep removed %d concerns and %d actions older than %s",
			concernResult.DeletedCount, actionResult.DeletedCount, cutoff.Format("2006-01-02"))
	}
}
