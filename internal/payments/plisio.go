package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Callback carries the fields of a Plisio payment notification.
type Callback struct {
	TxnID       string `json:"txn_id"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	OrderNumber string `json:"order_number"`
	VerifyHash  string `json:"verify_hash"`
}

// Callback statuses the provider reports for a finished payment.
const (
	CallbackStatusCompleted = "completed"
	CallbackStatusMismatch  = "mismatch"
	CallbackStatusExpired   = "expired"
	CallbackStatusCancelled = "cancelled"
	CallbackStatusError     = "error"
)

// VerifyCallback recomputes the HMAC-SHA1 digest over the callback payload
// with verify_hash removed and compares it to the claimed digest in constant
// time. A missing secret or malformed payload always fails verification.
func VerifyCallback(rawBody []byte, secretKey string) bool {
	if secretKey == "" {
		return false
	}

	payload := map[string]json.RawMessage{}
	decoder := json.NewDecoder(bytes.NewReader(rawBody))
	if err := decoder.Decode(&payload); err != nil {
		return false
	}

	claimedRaw, ok := payload["verify_hash"]
	if !ok {
		return false
	}
	var claimed string
	if err := json.Unmarshal(claimedRaw, &claimed); err != nil || claimed == "" {
		return false
	}
	delete(payload, "verify_hash")

	// json.Marshal emits map keys in sorted order; both sides sign the
	// same canonical form.
	canonical, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write(canonical)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(claimed)))
}

// SignPayload produces the verify_hash for a payload that does not yet
// contain one. Used by tests and by provider simulators.
func SignPayload(payload map[string]json.RawMessage, secretKey string) (string, error) {
	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
