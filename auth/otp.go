package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/smtp"
	"net/url"
	"os"
	"strings"
	"time"

	"mudra/db"
	"mudra/rdx"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const otpTTL = 5 * time.Minute

func GenerateOTP(length int) string {
	digits := "0123456789"
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(digits[rand.Intn(len(digits))])
	}
	return otp.String()
}

func SendEmailOTP(toEmail, otp string) error {
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	msg := []byte("Subject: Email Verification\n\nYour OTP is: " + otp)

	a := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, a, from, []string{toEmail}, msg)
}

// sendSMSOTP posts the code to the SMS gateway. Gateway failures come
// back as coded errors so the handler can answer with a useful message.
func sendSMSOTP(phone, otp string) error {
	gateway := os.Getenv("SMS_GATEWAY_URL")
	if gateway == "" {
		// dev mode: no gateway configured
		log.Printf("SMS gateway not configured; OTP for %s is %s", phone, otp)
		return nil
	}

	resp, err := http.PostForm(gateway, url.Values{
		"to":      {phone},
		"message": {"Your e-stamp verification code is " + otp},
	})
	if err != nil {
		return fmt.Errorf("sms_gateway_unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("invalid_phone_number")
	case http.StatusTooManyRequests:
		return fmt.Errorf("too_many_requests")
	case http.StatusForbidden:
		return fmt.Errorf("captcha_check_failed")
	default:
		return fmt.Errorf("sms_gateway_error: status %d", resp.StatusCode)
	}
}

// otpErrorMessage maps provider error codes to the messages shown to
// the user. This is the only place error kinds are discriminated.
func otpErrorMessage(err error) (int, string) {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "invalid_phone_number"):
		return http.StatusBadRequest, "That phone number does not look valid"
	case strings.HasPrefix(msg, "too_many_requests"):
		return http.StatusTooManyRequests, "Too many attempts; please wait a few minutes"
	case strings.HasPrefix(msg, "captcha_check_failed"):
		return http.StatusForbidden, "Captcha verification failed; please retry"
	default:
		return http.StatusInternalServerError, "Could not send the verification code, please try again"
	}
}

// RequestOTPHandler sends a code to an email address or phone number.
func RequestOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" && input.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email or phone is required")
		return
	}

	// one code per contact per minute
	contact := input.Phone
	if contact == "" {
		contact = input.Email
	}
	acquired, err := rdx.RdxSetNX("otp:lock:"+contact, "1", time.Minute)
	if err == nil && !acquired {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Too many attempts; please wait a few minutes")
		return
	}

	otp := GenerateOTP(6)

	if input.Phone != "" {
		if err := sendSMSOTP(input.Phone, otp); err != nil {
			log.Println("SMS OTP error:", err)
			code, msg := otpErrorMessage(err)
			utils.RespondWithError(w, code, msg)
			return
		}
		if err := rdx.RdxSetWithTTL("otp:phone:"+input.Phone, otp, otpTTL); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store verification code")
			return
		}
	} else {
		if err := SendEmailOTP(input.Email, otp); err != nil {
			log.Println("Email OTP error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not send the verification code, please try again")
			return
		}
		if err := rdx.RdxSetWithTTL("otp:"+input.Email, otp, otpTTL); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store verification code")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Verification code sent"})
}

// VerifyOTPHandler checks a code and marks the matching contact
// verified on the user document.
func VerifyOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OTP == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var key string
	var filter, update bson.M
	switch {
	case input.Phone != "":
		key = "otp:phone:" + input.Phone
		filter = bson.M{"phone": input.Phone}
		update = bson.M{"$set": bson.M{"phone_verified": true}}
	case input.Email != "":
		key = "otp:" + input.Email
		filter = bson.M{"email": input.Email}
		update = bson.M{"$set": bson.M{"email_verified": true}}
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Email or phone is required")
		return
	}

	storedOTP, err := rdx.RdxGet(key)
	if err != nil || storedOTP != input.OTP {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired verification code")
		return
	}

	if _, err := db.UserCollection.UpdateOne(context.TODO(), filter, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify user")
		return
	}

	rdx.RdxDel(key)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Verified successfully"})
}
