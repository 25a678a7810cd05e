package wizard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mudra/db"
	"mudra/models"
	"mudra/rdx"
	"mudra/stampduty"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Wizard sessions outlive a single screen but not a shopping day.
const sessionTTL = 2 * time.Hour

func sessionKey(wizardID string) string {
	return "wizard:" + wizardID
}

// Load fetches a wizard session from Redis.
func Load(wizardID string) (State, error) {
	raw, err := rdx.RdxGet(sessionKey(wizardID))
	if err != nil {
		return State{}, err
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Discard drops a wizard session, e.g. once it has become an order.
func Discard(wizardID string) {
	_ = rdx.RdxDel(sessionKey(wizardID))
}

func save(s State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return rdx.RdxSetWithTTL(sessionKey(s.WizardID), string(raw), sessionTTL)
}

// StartWizard opens a wizard session. Legacy clients may seed it from
// the query-parameter contract in one shot.
func StartWizard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	seed, err := DecodeQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seed.WizardID = utils.GetUUID()
	if err := save(seed); err != nil {
		log.Println("StartWizard save error:", err)
		http.Error(w, "Failed to start checkout", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, seed)
}

// GetWizard returns the stored session, plus the equivalent query
// string so screens can keep their URLs in sync on back-navigation.
func GetWizard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s, err := Load(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Checkout session not found or expired", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"state": s,
		"query": s.EncodeQuery().Encode(),
	})
}

// UpdateWizard merges one step's fields into the session after
// validating any references they carry.
func UpdateWizard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	s, err := Load(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Checkout session not found or expired", http.StatusNotFound)
		return
	}

	var step State
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if step.DeliveryType != "" && !validDeliveryType(step.DeliveryType) {
		http.Error(w, "Invalid delivery type", http.StatusBadRequest)
		return
	}

	if step.StateID != "" && !exists(ctx, db.StatesCollection, "stateid", step.StateID) {
		http.Error(w, "Unknown state", http.StatusBadRequest)
		return
	}
	if step.DistrictID != "" && !exists(ctx, db.DistrictsCollection, "districtid", step.DistrictID) {
		http.Error(w, "Unknown district", http.StatusBadRequest)
		return
	}
	if step.TehsilID != "" && !exists(ctx, db.TehsilsCollection, "tehsilid", step.TehsilID) {
		http.Error(w, "Unknown tehsil", http.StatusBadRequest)
		return
	}
	if step.ProductID != "" && !exists(ctx, db.ProductsCollection, "productid", step.ProductID) {
		http.Error(w, "Unknown stamp product", http.StatusBadRequest)
		return
	}

	s = s.Merge(step)
	if err := save(s); err != nil {
		log.Println("UpdateWizard save error:", err)
		http.Error(w, "Failed to save checkout step", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"state": s,
		"query": s.EncodeQuery().Encode(),
	})
}

// QuoteWizard prices the session via the duty table. The selected
// product's fees are reported alongside; the payable total is
// stampAmount + deliveryFee.
func QuoteWizard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	s, err := Load(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Checkout session not found or expired", http.StatusNotFound)
		return
	}
	if s.DocumentType == "" || s.TransactionValue <= 0 {
		http.Error(w, "Document type and transaction value are required for a quote", http.StatusBadRequest)
		return
	}

	breakdown := stampduty.Compute(s.DocumentType, s.TransactionValue, s.DeliveryType)

	resp := utils.M{
		"stampAmount": breakdown.StampAmount,
		"deliveryFee": breakdown.DeliveryFee,
		"total":       breakdown.Total,
	}

	if s.ProductID != "" {
		var product models.StampProduct
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": s.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Selected stamp product no longer exists", http.StatusConflict)
			return
		} else if err != nil {
			log.Println("QuoteWizard product lookup error:", err)
			http.Error(w, "Failed to load product", http.StatusInternalServerError)
			return
		}
		resp["platformFee"] = product.PlatformFee
		resp["expressFee"] = product.ExpressFee
		resp["deliveryTime"] = product.DeliveryTime
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func exists(ctx context.Context, coll *mongo.Collection, field, value string) bool {
	count, err := coll.CountDocuments(ctx, bson.M{field: value})
	if err != nil {
		log.Printf("existence check %s=%s failed: %v", field, value, err)
		return false
	}
	return count > 0
}
