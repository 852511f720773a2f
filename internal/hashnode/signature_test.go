package hashnode

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func signBody(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"data":{"post":{"id":"p1"},"eventType":"post_published"}}`)
	ts := int64(1724800000)

	header := fmt.Sprintf("t=%d,v1=%s", ts, signBody(secret, ts, body))
	require.True(t, VerifySignature(body, header, secret))
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	secret := "whsec_test"
	body := []byte("payload")
	ts := int64(1724800000)
	sig := signBody(secret, ts, body)

	cases := map[string]string{
		"empty":            "",
		"missing v1":       fmt.Sprintf("t=%d", ts),
		"missing t":        "v1=" + sig,
		"garbage":          "not-a-signature-header",
		"non-numeric t":    "t=yesterday,v1=" + sig,
		"empty v1":         fmt.Sprintf("t=%d,v1=", ts),
		"swapped k/v only": fmt.Sprintf("%d=t,%s=v1", ts, sig),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			require.False(t, VerifySignature(body, header, secret))
		})
	}
}

func TestVerifySignature_AnyFlippedDigestChar(t *testing.T) {
	secret := "whsec_test"
	body := []byte("payload")
	ts := int64(1724800000)
	sig := signBody(secret, ts, body)

	for i := range sig {
		flipped := []byte(sig)
		if flipped[i] == 'f' {
			flipped[i] = '0'
		} else {
			flipped[i] = 'f'
		}
		header := fmt.Sprintf("t=%d,v1=%s", ts, flipped)
		require.Falsef(t, VerifySignature(body, header, secret), "digest accepted with byte %d flipped", i)
	}
}

func TestVerifySignature_WrongSecretOrBody(t *testing.T) {
	body := []byte("payload")
	ts := int64(1724800000)
	header := fmt.Sprintf("t=%d,v1=%s", ts, signBody("right-secret", ts, body))

	require.False(t, VerifySignature(body, header, "wrong-secret"))
	require.False(t, VerifySignature([]byte("tampered"), header, "right-secret"))
}

func TestVerifySignature_TimestampIsSigned(t *testing.T) {
	secret := "whsec_test"
	body := []byte("payload")
	sig := signBody(secret, 1724800000, body)

	// Same digest presented under a different timestamp must fail.
	header := fmt.Sprintf("t=%d,v1=%s", 1724800001, sig)
	require.False(t, VerifySignature(body, header, secret))
}

func TestParseSignatureHeader(t *testing.T) {
	ts, sig, ok := ParseSignatureHeader("t=1724800000,v1=abcdef")
	require.True(t, ok)
	require.Equal(t, int64(1724800000), ts)
	require.Equal(t, "abcdef", sig)

	_, _, ok = ParseSignatureHeader("v1=abcdef,t=1724800000")
	require.True(t, ok, "field order must not matter")
}
