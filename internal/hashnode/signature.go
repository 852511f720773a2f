package hashnode

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ParseSignatureHeader splits the x-hashnode-signature value
// "t=<unix-seconds>,v1=<hex-hmac>" into its two fields. ok is false when
// either field is absent or the timestamp is not an integer.
func ParseSignatureHeader(header string) (timestamp int64, signature string, ok bool) {
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, "", false
			}
			timestamp = ts
		case "v1":
			signature = v
		}
	}
	if timestamp == 0 || signature == "" {
		return 0, "", false
	}
	return timestamp, signature, true
}

// VerifySignature checks an inbound webhook body against its signature
// header. The signed payload is "<timestamp>.<rawBody>" keyed with the shared
// secret. Any malformed header fails closed. There is no freshness window:
// the timestamp participates in the digest but its age is not checked.
func VerifySignature(rawBody []byte, header, secret string) bool {
	timestamp, signature, ok := ParseSignatureHeader(header)
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
