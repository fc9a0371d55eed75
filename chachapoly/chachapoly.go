// Package chachapoly implements the ChaCha20-Poly1305 and
// XChaCha20-Poly1305 AEAD constructions from RFC 8439 and
// draft-irtf-cfrg-xchacha, built directly on the chacha20 and
// poly1305 packages.
package chachapoly

import (
	"crypto/subtle"
	"encoding/binary"

	"coreprim.dev/chacha20"
	"coreprim.dev/coreerr"
	"coreprim.dev/poly1305"
)

const (
	KeySize   = chacha20.KeySize
	TagSize   = poly1305.TagSize
	NonceSize = chacha20.NonceSize
)

// Seal encrypts and authenticates plaintext, appending the result
// (ciphertext || tag) to dst and returning the extended slice. aad is
// authenticated but not encrypted.
func Seal(dst []byte, key [KeySize]byte, nonce [NonceSize]byte, plaintext, aad []byte) []byte {
	c := chacha20.New(key, nonce, 0)
	return seal(dst, c, plaintext, aad)
}

// Open authenticates and decrypts ciphertext (which must have the tag
// appended, as produced by Seal), appending the plaintext to dst.
func Open(dst []byte, key [KeySize]byte, nonce [NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	c := chacha20.New(key, nonce, 0)
	return open(dst, c, ciphertext, aad)
}

// SealX and OpenX are the XChaCha20-Poly1305 variants, taking a
// 24-byte extended nonce.
func SealX(dst []byte, key [KeySize]byte, nonce [chacha20.NonceSizeX]byte, plaintext, aad []byte) []byte {
	c := chacha20.NewX(key, nonce, 0)
	return seal(dst, c, plaintext, aad)
}

func OpenX(dst []byte, key [KeySize]byte, nonce [chacha20.NonceSizeX]byte, ciphertext, aad []byte) ([]byte, error) {
	c := chacha20.NewX(key, nonce, 0)
	return open(dst, c, ciphertext, aad)
}

func oneTimeKey(c *chacha20.Cipher) [32]byte {
	var block [64]byte
	c.KeyStream(block[:])
	var key [32]byte
	copy(key[:], block[:32])
	c.SetCounter(1)
	return key
}

func seal(dst []byte, c *chacha20.Cipher, plaintext, aad []byte) []byte {
	polyKey := oneTimeKey(c)

	start := len(dst)
	dst = append(dst, plaintext...)
	ciphertext := dst[start:]
	c.XORKeyStream(ciphertext, ciphertext)

	tag := computeTag(&polyKey, aad, ciphertext)
	return append(dst, tag[:]...)
}

func open(dst []byte, c *chacha20.Cipher, ciphertext, aad []byte) ([]byte, error) {
	if len(ciphertext) < TagSize {
		return nil, coreerr.ErrWrongLength
	}
	boxed := ciphertext[:len(ciphertext)-TagSize]
	wantTag := ciphertext[len(ciphertext)-TagSize:]

	polyKey := oneTimeKey(c)
	gotTag := computeTag(&polyKey, aad, boxed)
	if subtle.ConstantTimeCompare(gotTag[:], wantTag) != 1 {
		return nil, coreerr.ErrDecryptFailed
	}

	start := len(dst)
	dst = append(dst, boxed...)
	plaintext := dst[start:]
	c.XORKeyStream(plaintext, plaintext)
	return dst, nil
}

// computeTag authenticates aad || pad16(aad) || ciphertext ||
// pad16(ciphertext) || len(aad) || len(ciphertext), per RFC 8439 §2.8.
func computeTag(key *[32]byte, aad, ciphertext []byte) [TagSize]byte {
	m := poly1305.New(key)
	m.Write(aad)
	writePad16(m, len(aad))
	m.Write(ciphertext)
	writePad16(m, len(ciphertext))

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:8], uint64(len(aad)))
	binary.LittleEndian.PutUint64(lengths[8:16], uint64(len(ciphertext)))
	m.Write(lengths[:])

	var tag [TagSize]byte
	copy(tag[:], m.Sum(nil))
	return tag
}

func writePad16(m *poly1305.MAC, n int) {
	if rem := n % 16; rem != 0 {
		var pad [16]byte
		m.Write(pad[:16-rem])
	}
}

