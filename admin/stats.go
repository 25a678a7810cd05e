package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"mudra/db"
	"mudra/models"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetStats returns order counts per status and completed revenue.
// Aggregation runs in Mongo; orders are never loaded into memory.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$totalPaid"},
		}},
	}

	cursor, err := db.OrdersCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("GetStats Aggregate error:", err)
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status  string `bson:"_id"`
		Count   int64  `bson:"count"`
		Revenue int64  `bson:"revenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		log.Println("GetStats cursor.All error:", err)
		http.Error(w, "Error reading stats", http.StatusInternalServerError)
		return
	}

	counts := map[string]int64{
		models.OrderPending:    0,
		models.OrderProcessing: 0,
		models.OrderCompleted:  0,
		models.OrderFailed:     0,
	}
	var total, revenue int64
	for _, g := range groups {
		counts[g.Status] = g.Count
		total += g.Count
		if g.Status == models.OrderCompleted {
			revenue = g.Revenue
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalOrders":  total,
		"statusCounts": counts,
		"revenue":      revenue,
	})
}
