package mpi

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/kevin07696/mpi-client/pkg/encoding"
)

// Operation names the envelope element of a request
type Operation string

const (
	OperationAuthorize Operation = "Authorize"
	OperationStatus    Operation = "Status"
	OperationCapture   Operation = "Capture"
)

// Sign computes the request digest.
//
// Authorize: SHA1(uid + orderid + amount + description + secret)
// Status, Capture: SHA1(uid + identifier + secret)
//
// ok is false when one of the signed fields is empty, in which case the
// request is sent without a hash.
func Sign(op Operation, merchantUID string, transaction *encoding.Map, identifier, clientSecret string) (digest string, ok bool) {
	var fields []string
	switch op {
	case OperationAuthorize:
		fields = []string{
			merchantUID,
			transaction.GetString("orderid"),
			transaction.GetString("amount"),
			transaction.GetString("description"),
		}
	case OperationStatus, OperationCapture:
		fields = []string{merchantUID, identifier}
	default:
		return "", false
	}

	for _, f := range fields {
		if f == "" {
			return "", false
		}
	}

	h := sha1.New()
	for _, f := range fields {
		h.Write([]byte(f))
	}
	h.Write([]byte(clientSecret))

	return hex.EncodeToString(h.Sum(nil)), true
}
