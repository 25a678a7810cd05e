package models

import "time"

type State struct {
	StateID string `json:"stateid" bson:"stateid"`
	Name    string `json:"name" bson:"name"`
	Code    string `json:"code" bson:"code"`
}

type District struct {
	DistrictID string `json:"districtid" bson:"districtid"`
	StateID    string `json:"stateid" bson:"stateid"`
	Name       string `json:"name" bson:"name"`
}

// Tehsil is the leaf of the location hierarchy.
type Tehsil struct {
	TehsilID   string `json:"tehsilid" bson:"tehsilid"`
	DistrictID string `json:"districtid" bson:"districtid"`
	Name       string `json:"name" bson:"name"`
}

type StampCategory struct {
	CategoryID  string `json:"categoryid" bson:"categoryid"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type StampProduct struct {
	ProductID    string `json:"productid" bson:"productid"`
	CategoryID   string `json:"categoryid" bson:"categoryid"`
	StateID      string `json:"stateid" bson:"stateid"`
	Name         string `json:"name" bson:"name"`
	Amount       int64  `json:"amount" bson:"amount"`
	PlatformFee  int64  `json:"platformFee" bson:"platformFee"`
	ExpressFee   int64  `json:"expressFee,omitempty" bson:"expressFee,omitempty"`
	DeliveryFee  int64  `json:"deliveryFee,omitempty" bson:"deliveryFee,omitempty"`
	DeliveryTime string `json:"deliveryTime,omitempty" bson:"deliveryTime,omitempty"`
}

// Order statuses. Transitions are monotonic:
// pending -> processing -> completed | failed.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderFailed     = "failed"
)

// Delivery types
const (
	DeliveryDigital = "digital"
	DeliveryDoor    = "door"
)

type Order struct {
	OrderID          string    `json:"orderid" bson:"orderid"`
	UserID           string    `json:"userid" bson:"userid"`
	ProductID        string    `json:"productid" bson:"productid"`
	StateID          string    `json:"stateid" bson:"stateid"`
	DistrictID       string    `json:"districtid" bson:"districtid"`
	TehsilID         string    `json:"tehsilid" bson:"tehsilid"`
	Party1Name       string    `json:"party1Name" bson:"party1Name"`
	Party2Name       string    `json:"party2Name" bson:"party2Name"`
	DocumentType     string    `json:"documentType" bson:"documentType"`
	TransactionValue int64     `json:"transactionValue" bson:"transactionValue"`
	ExecutionDate    string    `json:"executionDate,omitempty" bson:"executionDate,omitempty"`
	PropertyDesc     string    `json:"propertyDescription,omitempty" bson:"propertyDescription,omitempty"`
	Email            string    `json:"email" bson:"email"`
	Phone            string    `json:"phone" bson:"phone"`
	Whatsapp         string    `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	DeliveryType     string    `json:"deliveryType" bson:"deliveryType"`
	Address          string    `json:"address,omitempty" bson:"address,omitempty"`
	Pincode          string    `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Landmark         string    `json:"landmark,omitempty" bson:"landmark,omitempty"`
	StampAmount      int64     `json:"stampAmount" bson:"stampAmount"`
	PlatformFee      int64     `json:"platformFee" bson:"platformFee"`
	ExpressFee       int64     `json:"expressFee,omitempty" bson:"expressFee,omitempty"`
	DeliveryFee      int64     `json:"deliveryFee,omitempty" bson:"deliveryFee,omitempty"`
	TotalPaid        int64     `json:"totalPaid" bson:"totalPaid"`
	Status           string    `json:"status" bson:"status"`
	PdfURL           string    `json:"pdfUrl,omitempty" bson:"pdfUrl,omitempty"`
	ScanThumbURL     string    `json:"scanThumbUrl,omitempty" bson:"scanThumbUrl,omitempty"`
	CourierTracking  string    `json:"courierTrackingId,omitempty" bson:"courierTrackingId,omitempty"`
	CertificateNo    string    `json:"certificateNo,omitempty" bson:"certificateNo,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}
