package signing

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"coreprim.dev/coreerr"
)

// EncodeDER marshals an ECDSA (r, s) pair as a SEQUENCE{INTEGER, INTEGER}
// DER signature, the encoding used on the wire by TLS and X.509.
func EncodeDER(r, s []byte) []byte {
	rBig := new(big.Int).SetBytes(r)
	sBig := new(big.Int).SetBytes(s)
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(rBig)
		b.AddASN1BigInt(sBig)
	})
	out, _ := b.Bytes()
	return out
}

// DecodeDER parses a SEQUENCE{INTEGER, INTEGER} DER signature, returning
// r and s as fixed-size big-endian byte arrays of the given width.
func DecodeDER(der []byte, size int) (r, s []byte, err error) {
	input := cryptobyte.String(der)
	var inner cryptobyte.String
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() {
		return nil, nil, coreerr.ErrBadSignature
	}
	var rBig, sBig big.Int
	if !inner.ReadASN1Integer(&rBig) || !inner.ReadASN1Integer(&sBig) || !inner.Empty() {
		return nil, nil, coreerr.ErrBadSignature
	}
	rBytes := rBig.Bytes()
	sBytes := sBig.Bytes()
	if len(rBytes) > size || len(sBytes) > size {
		return nil, nil, coreerr.ErrBadSignature
	}
	r = make([]byte, size)
	s = make([]byte, size)
	copy(r[size-len(rBytes):], rBytes)
	copy(s[size-len(sBytes):], sBytes)
	return r, s, nil
}
