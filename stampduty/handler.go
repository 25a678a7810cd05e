package stampduty

import (
	"net/http"
	"strconv"

	"mudra/utils"

	"github.com/julienschmidt/httprouter"
)

// QuoteHandler answers GET /api/duty/quote for ad hoc price checks.
func QuoteHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	docType := q.Get("documentType")
	if docType == "" {
		http.Error(w, "documentType is required", http.StatusBadRequest)
		return
	}

	value, err := strconv.ParseInt(q.Get("transactionValue"), 10, 64)
	if err != nil || value <= 0 {
		http.Error(w, "transactionValue must be a positive integer", http.StatusBadRequest)
		return
	}

	breakdown := Compute(docType, value, q.Get("deliveryType"))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"documentType": docType,
		"rate":         RateFor(docType),
		"stampAmount":  breakdown.StampAmount,
		"deliveryFee":  breakdown.DeliveryFee,
		"total":        breakdown.Total,
	})
}
