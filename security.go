package linkbook

import (
	"crypto/rand"
	"encoding/base64"
)

// Pinned Tailwind build served from the CDN. The URL and its subresource
// integrity hash move together; the page template references both verbatim,
// so bumping the version means regenerating the hash.
const (
	TailwindScriptURL = "https://cdn.tailwindcss.com/3.4.16"
	TailwindScriptSRI = "sha384-lSK93E3QkC3YQYyHELeBZt9y8K5K0T/0Xj7Vn1GankHMhuibnXCY4D1t1uFWeFMZ"
)

// nonceSize is the entropy of a CSP nonce in bytes.
const nonceSize = 16

// NewNonce returns a fresh CSP nonce: nonceSize random bytes encoded as
// unpadded URL-safe base64. Every rendered page gets its own.
func NewNonce() string {
	buf := make([]byte, nonceSize)
	if _, err := rand.Read(buf); err != nil {
		panic("linkbook: reading random bytes: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
