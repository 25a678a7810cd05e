package catalog

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoriesCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetCategories Find error:", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var categories []models.StampCategory
	if err := cursor.All(ctx, &categories); err != nil {
		log.Println("GetCategories cursor.All error:", err)
		http.Error(w, "Error reading categories", http.StatusInternalServerError)
		return
	}
	if len(categories) == 0 {
		categories = []models.StampCategory{}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.StampCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	category.CategoryID = "sc" + utils.GenerateRandomString(10)
	if _, err := db.CategoriesCollection.InsertOne(ctx, category); err != nil {
		log.Println("CreateCategory InsertOne error:", err)
		http.Error(w, "Failed to save category", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, category)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("id")

	var patch struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if name := strings.TrimSpace(patch.Name); name != "" {
		update["name"] = name
	}
	if patch.Description != "" {
		update["description"] = patch.Description
	}
	if len(update) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	res, err := db.CategoriesCollection.UpdateOne(ctx, bson.M{"categoryid": categoryID}, bson.M{"$set": update})
	if err != nil {
		log.Println("UpdateCategory error:", err)
		http.Error(w, "Failed to save category", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.CategoriesCollection.DeleteOne(ctx, bson.M{"categoryid": ps.ByName("id")})
	if err != nil {
		log.Println("DeleteCategory error:", err)
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
