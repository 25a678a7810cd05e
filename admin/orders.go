package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mudra/cert"
	"mudra/db"
	"mudra/models"
	"mudra/notify"
	"mudra/orders"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrders lists orders for the back office with ?status=, ?state=
// and paging.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Status != "" {
		if !orders.ValidStatus(opts.Status) {
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}
		filter["status"] = opts.Status
	}
	if opts.State != "" {
		filter["stateid"] = opts.State
	}

	findOpts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.OrdersCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("admin GetOrders Find error:", err)
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("admin GetOrders cursor.All error:", err)
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	count, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		count = int64(len(list))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders": list,
		"total":  count,
		"page":   opts.Page,
		"limit":  opts.Limit,
	})
}

// UpdateOrderStatus moves an order along the status machine. Illegal
// jumps are rejected, so a completed order can never be reopened.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var patch struct {
		Status          string `json:"status"`
		CourierTracking string `json:"courierTrackingId"`
		PdfURL          string `json:"pdfUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !orders.ValidStatus(patch.Status) {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("UpdateOrderStatus lookup error:", err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	if !orders.CanTransition(order.Status, patch.Status) {
		http.Error(w, "Illegal status transition "+order.Status+" -> "+patch.Status, http.StatusConflict)
		return
	}

	update := bson.M{
		"status":    patch.Status,
		"updatedAt": time.Now(),
	}
	if patch.CourierTracking != "" {
		update["courierTrackingId"] = patch.CourierTracking
	}
	if patch.PdfURL != "" {
		update["pdfUrl"] = patch.PdfURL
	}
	if patch.Status == models.OrderCompleted && order.CertificateNo == "" {
		certNo, err := cert.NewCertificateNo()
		if err != nil {
			log.Println("UpdateOrderStatus certificate number error:", err)
			http.Error(w, "Failed to save order", http.StatusInternalServerError)
			return
		}
		update["certificateNo"] = certNo
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"orderid": orderID}, bson.M{"$set": update}); err != nil {
		log.Println("UpdateOrderStatus error:", err)
		http.Error(w, "Failed to save order", http.StatusInternalServerError)
		return
	}

	notify.PublishOrderEvent("status", orderID, patch.Status, order.TotalPaid)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
