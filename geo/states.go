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

// GetStates returns all states sorted by name.
func GetStates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.StatesCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetStates Find error:", err)
		http.Error(w, "Failed to load states", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var states []models.State
	if err := cursor.All(ctx, &states); err != nil {
		log.Println("GetStates cursor.All error:", err)
		http.Error(w, "Error reading states", http.StatusInternalServerError)
		return
	}
	if len(states) == 0 {
		states = []models.State{}
	}

	utils.RespondWithJSON(w, http.StatusOK, states)
}

// CreateState inserts a new state. State codes are unique.
func CreateState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var state models.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	state.Name = strings.TrimSpace(state.Name)
	state.Code = strings.ToUpper(strings.TrimSpace(state.Code))
	if state.Name == "" || state.Code == "" {
		http.Error(w, "Name and code are required", http.StatusBadRequest)
		return
	}

	err := db.StatesCollection.FindOne(ctx, bson.M{"code": state.Code}).Err()
	if err == nil {
		http.Error(w, "State code already exists", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		log.Println("CreateState lookup error:", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	state.StateID = "st" + utils.GenerateRandomString(10)
	if _, err := db.StatesCollection.InsertOne(ctx, state); err != nil {
		log.Println("CreateState InsertOne error:", err)
		http.Error(w, "Failed to save state", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, state)
}

// UpdateState renames a state or changes its code (still unique).
func UpdateState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stateID := ps.ByName("id")

	var patch struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if name := strings.TrimSpace(patch.Name); name != "" {
		update["name"] = name
	}
	if code := strings.ToUpper(strings.TrimSpace(patch.Code)); code != "" {
		err := db.StatesCollection.FindOne(ctx, bson.M{
			"code":    code,
			"stateid": bson.M{"$ne": stateID},
		}).Err()
		if err == nil {
			http.Error(w, "State code already exists", http.StatusConflict)
			return
		} else if err != mongo.ErrNoDocuments {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		update["code"] = code
	}
	if len(update) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	res, err := db.StatesCollection.UpdateOne(ctx, bson.M{"stateid": stateID}, bson.M{"$set": update})
	if err != nil {
		log.Println("UpdateState error:", err)
		http.Error(w, "Failed to save state", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "State not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteState removes a state. A state that still has districts is not
// deleted unless ?cascade=true, in which case its districts and their
// tehsils go with it.
func DeleteState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stateID := ps.ByName("id")
	cascade := r.URL.Query().Get("cascade") == "true"

	count, err := db.DistrictsCollection.CountDocuments(ctx, bson.M{"stateid": stateID})
	if err != nil {
		log.Println("DeleteState count error:", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 && !cascade {
		http.Error(w, "State has districts; pass cascade=true to delete them too", http.StatusConflict)
		return
	}

	if cascade && count > 0 {
		if err := deleteDistrictsOfState(ctx, stateID); err != nil {
			log.Println("DeleteState cascade error:", err)
			http.Error(w, "Failed to delete districts", http.StatusInternalServerError)
			return
		}
	}

	res, err := db.StatesCollection.DeleteOne(ctx, bson.M{"stateid": stateID})
	if err != nil {
		log.Println("DeleteState error:", err)
		http.Error(w, "Failed to delete state", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "State not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func deleteDistrictsOfState(ctx context.Context, stateID string) error {
	cursor, err := db.DistrictsCollection.Find(ctx, bson.M{"stateid": stateID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var districts []models.District
	if err := cursor.All(ctx, &districts); err != nil {
		return err
	}

	for _, d := range districts {
		if _, err := db.TehsilsCollection.DeleteMany(ctx, bson.M{"districtid": d.DistrictID}); err != nil {
			return err
		}
	}

	_, err = db.DistrictsCollection.DeleteMany(ctx, bson.M{"stateid": stateID})
	return err
}
