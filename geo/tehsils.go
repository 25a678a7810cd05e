package geo

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mudra/db"
	"mudra/models"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetTehsils returns tehsils, optionally filtered by ?district=<id>.
func GetTehsils(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if districtID := r.URL.Query().Get("district"); districtID != "" {
		filter["districtid"] = districtID
	}

	cursor, err := db.TehsilsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetTehsils Find error:", err)
		http.Error(w, "Failed to load tehsils", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var tehsils []models.Tehsil
	if err := cursor.All(ctx, &tehsils); err != nil {
		log.Println("GetTehsils cursor.All error:", err)
		http.Error(w, "Error reading tehsils", http.StatusInternalServerError)
		return
	}
	if len(tehsils) == 0 {
		tehsils = []models.Tehsil{}
	}

	utils.RespondWithJSON(w, http.StatusOK, tehsils)
}

func CreateTehsil(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var tehsil models.Tehsil
	if err := json.NewDecoder(r.Body).Decode(&tehsil); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	tehsil.Name = strings.TrimSpace(tehsil.Name)
	if tehsil.Name == "" || tehsil.DistrictID == "" {
		http.Error(w, "Name and districtid are required", http.StatusBadRequest)
		return
	}

	err := db.DistrictsCollection.FindOne(ctx, bson.M{"districtid": tehsil.DistrictID}).Err()
	if err == mongo.ErrNoDocuments {
		http.Error(w, "District not found", http.StatusBadRequest)
		return
	} else if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	tehsil.TehsilID = "th" + utils.GenerateRandomString(10)
	if _, err := db.TehsilsCollection.InsertOne(ctx, tehsil); err != nil {
		log.Println("CreateTehsil InsertOne error:", err)
		http.Error(w, "Failed to save tehsil", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tehsil)
}

func UpdateTehsil(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tehsilID := ps.ByName("id")

	var patch struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(patch.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	res, err := db.TehsilsCollection.UpdateOne(ctx,
		bson.M{"tehsilid": tehsilID},
		bson.M{"$set": bson.M{"name": strings.TrimSpace(patch.Name)}},
	)
	if err != nil {
		log.Println("UpdateTehsil error:", err)
		http.Error(w, "Failed to save tehsil", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Tehsil not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteTehsil removes a tehsil. Tehsils have no children, so no
// cascade question arises.
func DeleteTehsil(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.TehsilsCollection.DeleteOne(ctx, bson.M{"tehsilid": ps.ByName("id")})
	if err != nil {
		log.Println("DeleteTehsil error:", err)
		http.Error(w, "Failed to delete tehsil", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Tehsil not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
