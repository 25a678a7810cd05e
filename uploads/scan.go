// Package uploads stores admin-uploaded scans of issued physical
// stamps alongside the order record.
package uploads

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mudra/db"
	"mudra/models"
	"mudra/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	scanDir    = "./static/scans"
	thumbDir   = "./static/scans/thumbs"
	thumbWidth = 200
)

var supportedScanTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadScan handles POST /api/admin/orders/:id/scan.
func UploadScan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	file, header, err := r.FormFile("scan")
	if err != nil {
		http.Error(w, "Scan file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !supportedScanTypes[header.Header.Get("Content-Type")] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG.", http.StatusBadRequest)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "File is not a readable image", http.StatusBadRequest)
		return
	}

	for _, dir := range []string{scanDir, thumbDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Println("UploadScan mkdir error:", err)
			http.Error(w, "Failed to store scan", http.StatusInternalServerError)
			return
		}
	}

	name := orderID + ".jpg"
	scanPath := filepath.Join(scanDir, name)
	if err := imaging.Save(img, scanPath); err != nil {
		log.Println("UploadScan save error:", err)
		http.Error(w, "Failed to store scan", http.StatusInternalServerError)
		return
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadScan thumbnail error:", err)
		http.Error(w, "Failed to store scan", http.StatusInternalServerError)
		return
	}

	update := bson.M{
		"pdfUrl":       "/static/scans/" + name,
		"scanThumbUrl": "/static/scans/thumbs/" + name,
		"updatedAt":    time.Now(),
	}
	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"orderid": orderID}, bson.M{"$set": update}); err != nil {
		log.Println("UploadScan order update error:", err)
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"scanUrl":  "/static/scans/" + name,
		"thumbUrl": "/static/scans/thumbs/" + name,
	})
}
