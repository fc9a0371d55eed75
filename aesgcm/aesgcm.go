// Package aesgcm implements AES-GCM (NIST SP 800-38D) combining the
// aes block cipher in counter mode with the ghash universal hash,
// restricted to the standard 96-bit nonce.
package aesgcm

import (
	"crypto/subtle"
	"encoding/binary"

	"coreprim.dev/aes"
	"coreprim.dev/coreerr"
	"coreprim.dev/ghash"
)

const (
	NonceSize = 12
	TagSize   = 16
)

// Cipher is an AES-GCM instance bound to a single key.
type Cipher struct {
	block *aes.Cipher
	h     [16]byte
}

// New expands a 16 or 32-byte AES key and precomputes the GHASH
// subkey H = AES_k(0^128).
func New(key []byte) (*Cipher, error) {
	block, err := aes.New(key)
	if err != nil {
		return nil, err
	}
	var h [16]byte
	block.Encrypt(h[:], h[:])
	return &Cipher{block: block, h: h}, nil
}

func (c *Cipher) j0(nonce []byte) [16]byte {
	var j [16]byte
	copy(j[:12], nonce)
	j[15] = 1
	return j
}

func inc32(ctr *[16]byte) {
	v := binary.BigEndian.Uint32(ctr[12:16])
	v++
	binary.BigEndian.PutUint32(ctr[12:16], v)
}

func (c *Cipher) ctrXOR(dst, src []byte, j0 [16]byte) {
	counter := j0
	inc32(&counter)

	var keystream [16]byte
	for len(src) > 0 {
		c.block.Encrypt(keystream[:], counter[:])
		n := len(src)
		if n > 16 {
			n = 16
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ keystream[i]
		}
		dst = dst[n:]
		src = src[n:]
		inc32(&counter)
	}
}

func (c *Cipher) tag(aad, ciphertext []byte, j0 [16]byte) [16]byte {
	g := ghash.New(c.h)
	g.Write(aad)
	padTo16(g, len(aad))
	g.Write(ciphertext)
	padTo16(g, len(ciphertext))

	var lengths [16]byte
	binary.BigEndian.PutUint64(lengths[0:8], uint64(len(aad))*8)
	binary.BigEndian.PutUint64(lengths[8:16], uint64(len(ciphertext))*8)
	g.Write(lengths[:])

	s := g.Sum()
	var ek0 [16]byte
	c.block.Encrypt(ek0[:], j0[:])
	var out [16]byte
	for i := range out {
		out[i] = s[i] ^ ek0[i]
	}
	return out
}

func padTo16(g *ghash.GHASH, n int) {
	if rem := n % 16; rem != 0 {
		var pad [16]byte
		g.Write(pad[:16-rem])
	}
}

// Seal encrypts and authenticates plaintext under a 12-byte nonce,
// appending ciphertext||tag to dst.
func (c *Cipher) Seal(dst []byte, nonce [NonceSize]byte, plaintext, aad []byte) []byte {
	j0 := c.j0(nonce[:])

	start := len(dst)
	dst = append(dst, plaintext...)
	ciphertext := dst[start:]
	c.ctrXOR(ciphertext, ciphertext, j0)

	t := c.tag(aad, ciphertext, j0)
	return append(dst, t[:]...)
}

// Open authenticates and decrypts ciphertext (with the tag appended,
// as produced by Seal), appending the plaintext to dst.
func (c *Cipher) Open(dst []byte, nonce [NonceSize]byte, ciphertext, aad []byte) ([]byte, error) {
	if len(ciphertext) < TagSize {
		return nil, coreerr.ErrWrongLength
	}
	boxed := ciphertext[:len(ciphertext)-TagSize]
	wantTag := ciphertext[len(ciphertext)-TagSize:]

	j0 := c.j0(nonce[:])
	gotTag := c.tag(aad, boxed, j0)
	if subtle.ConstantTimeCompare(gotTag[:], wantTag) != 1 {
		return nil, coreerr.ErrDecryptFailed
	}

	start := len(dst)
	dst = append(dst, boxed...)
	plaintext := dst[start:]
	c.ctrXOR(plaintext, plaintext, j0)
	return dst, nil
}
