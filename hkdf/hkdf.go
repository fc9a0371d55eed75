// Package hkdf implements RFC 5869 HKDF-Extract and HKDF-Expand over any
// stdlib-shaped hash.Hash constructor, built on this module's own hmac
// package so it composes directly with sha256 and sha512.
package hkdf

import (
	"hash"

	"coreprim.dev/hmac"
)

// Extract derives a pseudorandom key from input keying material and an
// optional salt (nil uses a zero-filled salt of the hash's output size).
func Extract(newHash func() hash.Hash, salt, ikm []byte) []byte {
	if len(salt) == 0 {
		salt = make([]byte, newHash().Size())
	}
	mac := hmac.New(newHash, salt)
	mac.Write(ikm)
	return mac.Sum(nil)
}

// Expand stretches a pseudorandom key into outLen bytes of output keying
// material bound to the given context info, per RFC 5869 §2.3.
func Expand(newHash func() hash.Hash, prk, info []byte, outLen int) []byte {
	hashLen := newHash().Size()
	out := make([]byte, 0, outLen+hashLen)
	var prev []byte
	counter := byte(1)

	for len(out) < outLen {
		mac := hmac.New(newHash, prk)
		mac.Write(prev)
		mac.Write(info)
		mac.Write([]byte{counter})
		prev = mac.Sum(nil)
		out = append(out, prev...)
		counter++
	}
	return out[:outLen]
}

// Derive runs Extract followed by Expand, the common one-shot entry
// point used when the caller has no need to reuse the extracted key.
func Derive(newHash func() hash.Hash, salt, ikm, info []byte, outLen int) []byte {
	prk := Extract(newHash, salt, ikm)
	return Expand(newHash, prk, info, outLen)
}
