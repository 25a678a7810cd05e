package wizard

import (
	"fmt"
	"net/url"
	"strconv"

	"mudra/models"
)

// State is the accumulated selection of the five-step checkout flow.
// JSON field names match the legacy query-parameter contract exactly.
type State struct {
	WizardID         string `json:"wizardid,omitempty"`
	StateID          string `json:"state,omitempty"`
	DistrictID       string `json:"district,omitempty"`
	TehsilID         string `json:"tehsil,omitempty"`
	DocumentType     string `json:"documentType,omitempty"`
	FirstPartyName   string `json:"firstPartyName,omitempty"`
	SecondPartyName  string `json:"secondPartyName,omitempty"`
	TransactionValue int64  `json:"transactionValue,omitempty"`
	ExecutionDate    string `json:"executionDate,omitempty"`
	PropertyDesc     string `json:"propertyDescription,omitempty"`
	ProductID        string `json:"productId,omitempty"`
	DeliveryType     string `json:"deliveryType,omitempty"`
}

// Query-parameter keys of the wizard contract. Screens reconstruct
// themselves from these on back-navigation, so the spelling is frozen.
const (
	paramState            = "state"
	paramDistrict         = "district"
	paramTehsil           = "tehsil"
	paramDocumentType     = "documentType"
	paramFirstPartyName   = "firstPartyName"
	paramSecondPartyName  = "secondPartyName"
	paramTransactionValue = "transactionValue"
	paramExecutionDate    = "executionDate"
	paramPropertyDesc     = "propertyDescription"
	paramProductID        = "productId"
	paramDeliveryType     = "deliveryType"
)

// DecodeQuery builds a State from the legacy query parameters.
func DecodeQuery(q url.Values) (State, error) {
	s := State{
		StateID:         q.Get(paramState),
		DistrictID:      q.Get(paramDistrict),
		TehsilID:        q.Get(paramTehsil),
		DocumentType:    q.Get(paramDocumentType),
		FirstPartyName:  q.Get(paramFirstPartyName),
		SecondPartyName: q.Get(paramSecondPartyName),
		ExecutionDate:   q.Get(paramExecutionDate),
		PropertyDesc:    q.Get(paramPropertyDesc),
		ProductID:       q.Get(paramProductID),
		DeliveryType:    q.Get(paramDeliveryType),
	}

	if raw := q.Get(paramTransactionValue); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return State{}, fmt.Errorf("invalid transactionValue %q", raw)
		}
		s.TransactionValue = v
	}

	if s.DeliveryType != "" && !validDeliveryType(s.DeliveryType) {
		return State{}, fmt.Errorf("invalid deliveryType %q", s.DeliveryType)
	}

	return s, nil
}

// EncodeQuery renders the state back into the query-parameter contract.
// Only set fields are emitted, matching what the screens send.
func (s State) EncodeQuery() url.Values {
	q := url.Values{}
	setIf(q, paramState, s.StateID)
	setIf(q, paramDistrict, s.DistrictID)
	setIf(q, paramTehsil, s.TehsilID)
	setIf(q, paramDocumentType, s.DocumentType)
	setIf(q, paramFirstPartyName, s.FirstPartyName)
	setIf(q, paramSecondPartyName, s.SecondPartyName)
	if s.TransactionValue > 0 {
		q.Set(paramTransactionValue, strconv.FormatInt(s.TransactionValue, 10))
	}
	setIf(q, paramExecutionDate, s.ExecutionDate)
	setIf(q, paramPropertyDesc, s.PropertyDesc)
	setIf(q, paramProductID, s.ProductID)
	setIf(q, paramDeliveryType, s.DeliveryType)
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// Merge overlays the set fields of other onto s.
func (s State) Merge(other State) State {
	if other.StateID != "" {
		s.StateID = other.StateID
	}
	if other.DistrictID != "" {
		s.DistrictID = other.DistrictID
	}
	if other.TehsilID != "" {
		s.TehsilID = other.TehsilID
	}
	if other.DocumentType != "" {
		s.DocumentType = other.DocumentType
	}
	if other.FirstPartyName != "" {
		s.FirstPartyName = other.FirstPartyName
	}
	if other.SecondPartyName != "" {
		s.SecondPartyName = other.SecondPartyName
	}
	if other.TransactionValue > 0 {
		s.TransactionValue = other.TransactionValue
	}
	if other.ExecutionDate != "" {
		s.ExecutionDate = other.ExecutionDate
	}
	if other.PropertyDesc != "" {
		s.PropertyDesc = other.PropertyDesc
	}
	if other.ProductID != "" {
		s.ProductID = other.ProductID
	}
	if other.DeliveryType != "" {
		s.DeliveryType = other.DeliveryType
	}
	return s
}

// ReadyForCheckout reports whether every field the final screen needs
// is present.
func (s State) ReadyForCheckout() error {
	switch {
	case s.StateID == "":
		return fmt.Errorf("state not selected")
	case s.DistrictID == "":
		return fmt.Errorf("district not selected")
	case s.TehsilID == "":
		return fmt.Errorf("tehsil not selected")
	case s.DocumentType == "":
		return fmt.Errorf("document type not selected")
	case s.FirstPartyName == "" || s.SecondPartyName == "":
		return fmt.Errorf("party names missing")
	case s.TransactionValue <= 0:
		return fmt.Errorf("transaction value missing")
	case s.ProductID == "":
		return fmt.Errorf("stamp product not selected")
	case !validDeliveryType(s.DeliveryType):
		return fmt.Errorf("delivery type missing")
	}
	return nil
}

func validDeliveryType(dt string) bool {
	return dt == models.DeliveryDigital || dt == models.DeliveryDoor || dt == "physical"
}
