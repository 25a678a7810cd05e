package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"mudra/db"
	"mudra/models"
	"mudra/rdx"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const productCacheTTL = 2 * time.Hour

func productCacheKey(stateID string) string {
	return "catalog:products:" + stateID
}

// GetProducts lists stamp products, filtered by ?state= and ?category=.
// The per-state listing is cached in Redis and invalidated on mutation.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stateID := r.URL.Query().Get("state")
	categoryID := r.URL.Query().Get("category")

	// Cache only the plain per-state listing
	if stateID != "" && categoryID == "" {
		if cached, err := rdx.RdxGet(productCacheKey(stateID)); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{}
	if stateID != "" {
		filter["stateid"] = stateID
	}
	if categoryID != "" {
		filter["categoryid"] = categoryID
	}

	cursor, err := db.ProductsCollection.Find(ctx, filter)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var products []models.StampProduct
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("GetProducts cursor.All error:", err)
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		products = []models.StampProduct{}
	}

	if stateID != "" && categoryID == "" {
		if jsonBytes, err := json.Marshal(products); err == nil {
			_ = rdx.RdxSetWithTTL(productCacheKey(stateID), string(jsonBytes), productCacheTTL)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.StampProduct
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetProduct error:", err)
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.StampProduct
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" || product.StateID == "" || product.CategoryID == "" {
		http.Error(w, "Name, stateid and categoryid are required", http.StatusBadRequest)
		return
	}
	if product.Amount < 0 || product.PlatformFee < 0 || product.ExpressFee < 0 || product.DeliveryFee < 0 {
		http.Error(w, "Fees must not be negative", http.StatusBadRequest)
		return
	}

	product.ProductID = "sp" + utils.GenerateRandomString(10)
	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to save product", http.StatusInternalServerError)
		return
	}

	_ = rdx.RdxDel(productCacheKey(product.StateID))
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// productPatch is the partial-update payload for a stamp product.
// Pointers distinguish "leave alone" from "set to zero".
type productPatch struct {
	Name         *string `json:"name"`
	CategoryID   *string `json:"categoryid"`
	Amount       *int64  `json:"amount"`
	PlatformFee  *int64  `json:"platformFee"`
	ExpressFee   *int64  `json:"expressFee"`
	DeliveryFee  *int64  `json:"deliveryFee"`
	DeliveryTime *string `json:"deliveryTime"`
}

// updateDoc validates the patch under the same rules CreateProduct
// applies and renders it as a $set document.
func (p productPatch) updateDoc() (bson.M, error) {
	update := bson.M{}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty")
		}
		update["name"] = name
	}
	if p.CategoryID != nil {
		if *p.CategoryID == "" {
			return nil, fmt.Errorf("categoryid must not be empty")
		}
		update["categoryid"] = *p.CategoryID
	}

	fees := map[string]*int64{
		"amount":      p.Amount,
		"platformFee": p.PlatformFee,
		"expressFee":  p.ExpressFee,
		"deliveryFee": p.DeliveryFee,
	}
	for field, v := range fees {
		if v == nil {
			continue
		}
		if *v < 0 {
			return nil, fmt.Errorf("%s must not be negative", field)
		}
		update[field] = *v
	}

	if p.DeliveryTime != nil {
		update["deliveryTime"] = *p.DeliveryTime
	}

	if len(update) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}
	return update, nil
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var existing models.StampProduct
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	var patch productPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	update, err := patch.updateDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{"$set": update}); err != nil {
		log.Println("UpdateProduct error:", err)
		http.Error(w, "Failed to save product", http.StatusInternalServerError)
		return
	}

	_ = rdx.RdxDel(productCacheKey(existing.StateID))
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var existing models.StampProduct
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	if _, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID}); err != nil {
		log.Println("DeleteProduct error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}

	_ = rdx.RdxDel(productCacheKey(existing.StateID))
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
