package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"mudra/db"
	"mudra/globals"
	"mudra/models"
	"mudra/notify"
	"mudra/stampduty"
	"mudra/utils"
	"mudra/wizard"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// createOrderInput carries either a wizard session reference or the
// full selection inline, plus contact and delivery details.
type createOrderInput struct {
	WizardID string `json:"wizardid"`
	wizard.State
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

// CreateOrder places an order. All amounts are recomputed here from
// the duty table and the catalogue product; figures sent by the client
// are ignored.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input createOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	selection := input.State
	if input.WizardID != "" {
		stored, err := wizard.Load(input.WizardID)
		if err != nil {
			http.Error(w, "Checkout session not found or expired", http.StatusNotFound)
			return
		}
		selection = stored.Merge(selection)
	}
	if err := selection.ReadyForCheckout(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Email == "" || input.Phone == "" {
		http.Error(w, "Email and phone are required", http.StatusBadRequest)
		return
	}

	deliveryType := selection.DeliveryType
	if deliveryType == "physical" {
		deliveryType = models.DeliveryDoor
	}
	if deliveryType == models.DeliveryDoor && (input.Address == "" || input.Pincode == "") {
		http.Error(w, "Address and pincode are required for door delivery", http.StatusBadRequest)
		return
	}

	var product models.StampProduct
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": selection.ProductID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Stamp product not found", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Println("CreateOrder product lookup error:", err)
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}
	if product.StateID != selection.StateID {
		http.Error(w, "Stamp product does not belong to the selected state", http.StatusBadRequest)
		return
	}

	breakdown := stampduty.Compute(selection.DocumentType, selection.TransactionValue, deliveryType)

	now := time.Now()
	order := models.Order{
		OrderID:          "ord" + utils.GenerateRandomString(12),
		UserID:           userID,
		ProductID:        product.ProductID,
		StateID:          selection.StateID,
		DistrictID:       selection.DistrictID,
		TehsilID:         selection.TehsilID,
		Party1Name:       selection.FirstPartyName,
		Party2Name:       selection.SecondPartyName,
		DocumentType:     selection.DocumentType,
		TransactionValue: selection.TransactionValue,
		ExecutionDate:    selection.ExecutionDate,
		PropertyDesc:     selection.PropertyDesc,
		Email:            input.Email,
		Phone:            input.Phone,
		Whatsapp:         input.Whatsapp,
		DeliveryType:     deliveryType,
		Address:          input.Address,
		Pincode:          input.Pincode,
		Landmark:         input.Landmark,
		StampAmount:      breakdown.StampAmount,
		PlatformFee:      product.PlatformFee,
		ExpressFee:       product.ExpressFee,
		DeliveryFee:      breakdown.DeliveryFee,
		TotalPaid:        breakdown.Total,
		Status:           models.OrderPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	if input.WizardID != "" {
		wizard.Discard(input.WizardID)
	}

	notify.PublishOrderEvent("created", order.OrderID, order.Status, order.TotalPaid)
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// GetOrder returns one order, visible to its owner and to admins.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("id")}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetOrder error:", err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	if order.UserID != userID && !isAdmin(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GetMyOrders lists the requesting user's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.OrdersCollection.Find(ctx,
		bson.M{"userid": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		log.Println("GetMyOrders Find error:", err)
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetMyOrders cursor.All error:", err)
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

func isAdmin(r *http.Request) bool {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	return ok && slices.Contains(roles, "admin")
}
