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

// GetDistricts returns districts, optionally filtered by ?state=<id>.
func GetDistricts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if stateID := r.URL.Query().Get("state"); stateID != "" {
		filter["stateid"] = stateID
	}

	cursor, err := db.DistrictsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetDistricts Find error:", err)
		http.Error(w, "Failed to load districts", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var districts []models.District
	if err := cursor.All(ctx, &districts); err != nil {
		log.Println("GetDistricts cursor.All error:", err)
		http.Error(w, "Error reading districts", http.StatusInternalServerError)
		return
	}
	if len(districts) == 0 {
		districts = []models.District{}
	}

	utils.RespondWithJSON(w, http.StatusOK, districts)
}

// CreateDistrict inserts a district under an existing state.
func CreateDistrict(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var district models.District
	if err := json.NewDecoder(r.Body).Decode(&district); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	district.Name = strings.TrimSpace(district.Name)
	if district.Name == "" || district.StateID == "" {
		http.Error(w, "Name and stateid are required", http.StatusBadRequest)
		return
	}

	err := db.StatesCollection.FindOne(ctx, bson.M{"stateid": district.StateID}).Err()
	if err == mongo.ErrNoDocuments {
		http.Error(w, "State not found", http.StatusBadRequest)
		return
	} else if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	district.DistrictID = "dt" + utils.GenerateRandomString(10)
	if _, err := db.DistrictsCollection.InsertOne(ctx, district); err != nil {
		log.Println("CreateDistrict InsertOne error:", err)
		http.Error(w, "Failed to save district", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, district)
}

func UpdateDistrict(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	districtID := ps.ByName("id")

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

	res, err := db.DistrictsCollection.UpdateOne(ctx,
		bson.M{"districtid": districtID},
		bson.M{"$set": bson.M{"name": strings.TrimSpace(patch.Name)}},
	)
	if err != nil {
		log.Println("UpdateDistrict error:", err)
		http.Error(w, "Failed to save district", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteDistrict removes a district; tehsils block the delete unless
// ?cascade=true.
func DeleteDistrict(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	districtID := ps.ByName("id")
	cascade := r.URL.Query().Get("cascade") == "true"

	count, err := db.TehsilsCollection.CountDocuments(ctx, bson.M{"districtid": districtID})
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 && !cascade {
		http.Error(w, "District has tehsils; pass cascade=true to delete them too", http.StatusConflict)
		return
	}
	if cascade && count > 0 {
		if _, err := db.TehsilsCollection.DeleteMany(ctx, bson.M{"districtid": districtID}); err != nil {
			log.Println("DeleteDistrict cascade error:", err)
			http.Error(w, "Failed to delete tehsils", http.StatusInternalServerError)
			return
		}
	}

	res, err := db.DistrictsCollection.DeleteOne(ctx, bson.M{"districtid": districtID})
	if err != nil {
		log.Println("DeleteDistrict error:", err)
		http.Error(w, "Failed to delete district", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "District not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
