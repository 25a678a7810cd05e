// Package cert renders and verifies e-stamp certificates. The QR on
// the PDF carries an HMAC-signed payload so a certificate can be
// checked without trusting the bearer.
package cert

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"mudra/db"
	"mudra/globals"
	"mudra/middleware"
	"mudra/models"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var certNoSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)

// NewCertificateNo returns a fresh "ES"-prefixed 12-digit certificate
// number drawn from crypto/rand.
func NewCertificateNo() (string, error) {
	n, err := rand.Int(rand.Reader, certNoSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ES%012d", n), nil
}

// mintCertificateNo assigns a certificate number to an order exactly
// once. The first caller wins; concurrent and later callers get the
// stored number back.
func mintCertificateNo(ctx context.Context, coll *mongo.Collection, orderID string) (string, error) {
	certNo, err := NewCertificateNo()
	if err != nil {
		return "", err
	}

	err = coll.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID, "certificateNo": bson.M{"$in": bson.A{"", nil}}},
		bson.M{"$set": bson.M{"certificateNo": certNo}},
	).Err()
	if err == nil {
		return certNo, nil
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	// another request minted first; use its number
	var order models.Order
	if err := coll.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		return "", err
	}
	if order.CertificateNo == "" {
		return "", fmt.Errorf("order %s has no certificate number after mint", orderID)
	}
	return order.CertificateNo, nil
}

// SignPayload returns orderID|certNo|timestamp|signature.
func SignPayload(orderID, certNo string, issuedAt int64) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, certNo, issuedAt)
	h := hmac.New(sha256.New, globals.CertHmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// VerifyPayload checks the signature and returns the order ID and
// certificate number it covers.
func VerifyPayload(payload string) (orderID, certNo string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", "", fmt.Errorf("malformed payload")
	}
	issuedAt, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", fmt.Errorf("malformed timestamp")
	}

	expected := SignPayload(parts[0], parts[1], issuedAt)
	if !hmac.Equal([]byte(expected), []byte(payload)) {
		return "", "", fmt.Errorf("signature mismatch")
	}
	return parts[0], parts[1], nil
}

// PrintCertificate streams the e-stamp PDF for a completed order.
func PrintCertificate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	err = db.OrdersCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("id")}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("PrintCertificate lookup error:", err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	if order.UserID != claims.UserID && !slices.Contains(claims.Role, "admin") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if order.Status != models.OrderCompleted {
		http.Error(w, "Certificate is available once the order is completed", http.StatusConflict)
		return
	}

	certNo := order.CertificateNo
	if certNo == "" {
		certNo, err = mintCertificateNo(ctx, db.OrdersCollection, order.OrderID)
		if err != nil {
			log.Println("PrintCertificate mint error:", err)
			http.Error(w, "Failed to issue certificate", http.StatusInternalServerError)
			return
		}
	}

	qrPayload := SignPayload(order.OrderID, certNo, time.Now().Unix())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	buf, err := renderPDF(order, certNo, qrPNG)
	if err != nil {
		log.Println("PrintCertificate render error:", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=estamp-"+certNo+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func renderPDF(order models.Order, certNo string, qrPNG []byte) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "e-Stamp Certificate")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Certificate No: %s", certNo))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Document Type: %s", order.DocumentType))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("First Party: %s", order.Party1Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Second Party: %s", order.Party2Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Consideration Value: Rs. %d", order.TransactionValue))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Stamp Duty Paid: Rs. %d", order.StampAmount))
	pdf.Ln(8)
	if order.ExecutionDate != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Execution Date: %s", order.ExecutionDate))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Issued: %s", time.Now().Format("02 Jan 2006")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// VerifyCertificate is the public endpoint behind the QR code.
func VerifyCertificate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payload := r.URL.Query().Get("payload")
	if payload == "" {
		http.Error(w, "Payload is required", http.StatusBadRequest)
		return
	}

	orderID, certNo, err := VerifyPayload(payload)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
		return
	}

	var order models.Order
	dbErr := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID, "certificateNo": certNo}).Decode(&order)
	if dbErr != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":         true,
		"certificateNo": certNo,
		"documentType":  order.DocumentType,
		"stampAmount":   order.StampAmount,
		"status":        order.Status,
	})
}
