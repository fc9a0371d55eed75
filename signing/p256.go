package signing

import (
	"crypto/rand"
	"hash"

	"coreprim.dev/bignum"
	"coreprim.dev/coreerr"
	"coreprim.dev/curve/p256"
	"coreprim.dev/sha256"
)

func newSHA256() hash.Hash { return sha256.New() }

const p256Limbs = 4
const p256QLenBits = 256

var p256OrderLimbs = []uint64{
	0xf3b9cac2fc632551, 0xbce6faada7179e84, 0xffffffffffffffff, 0xffffffff00000000,
}

var p256OrderParams = bignum.NewMontParams(p256OrderLimbs)

// p256HalfOrder is n/2, used for low-S normalization.
var p256HalfOrderLimbs = computeHalfOrder(p256OrderLimbs)

func computeHalfOrder(order []uint64) []uint64 {
	half := make([]uint64, len(order))
	copy(half, order)
	var carry uint64
	for i := len(half) - 1; i >= 0; i-- {
		v := half[i]
		half[i] = v>>1 | carry<<63
		carry = v & 1
	}
	return half
}

// SigningKeyP256 is a P-256 ECDSA/ECDH private key.
type SigningKeyP256 struct {
	d      [p256Limbs]uint64 // standard form, 0 < d < n
	pub    p256.Affine
	dBytes [32]byte
}

// PublicKeyP256 is a P-256 public key.
type PublicKeyP256 struct {
	point p256.Affine
}

// GenerateP256Key draws a uniformly random private scalar.
func GenerateP256Key() (*SigningKeyP256, error) {
	for {
		var raw [32]byte
		if _, err := rand.Read(raw[:]); err != nil {
			return nil, err
		}
		var d [p256Limbs]uint64
		beToLimbs(d[:], raw[:])
		if bignum.IsZero(d[:]) || bignum.Cmp(d[:], p256OrderLimbs) >= 0 {
			continue
		}
		jp := p256.ScalarBaseMult(raw)
		return &SigningKeyP256{d: d, pub: jp.ToAffine(), dBytes: raw}, nil
	}
}

// NewSigningKeyP256 builds a signing key from a 32-byte scalar.
func NewSigningKeyP256(raw [32]byte) (*SigningKeyP256, error) {
	var d [p256Limbs]uint64
	beToLimbs(d[:], raw[:])
	if bignum.IsZero(d[:]) || bignum.Cmp(d[:], p256OrderLimbs) >= 0 {
		return nil, coreerr.ErrOutOfRange
	}
	jp := p256.ScalarBaseMult(raw)
	return &SigningKeyP256{d: d, pub: jp.ToAffine(), dBytes: raw}, nil
}

func (k *SigningKeyP256) Public() PublicKeyP256 { return PublicKeyP256{point: k.pub} }

// Sign produces a deterministic (RFC 6979) ECDSA signature over a
// pre-hashed digest, normalizing s to the lower half of the order.
func (k *SigningKeyP256) Sign(digest []byte) (r, s [32]byte) {
	gen := newRFC6979(newSHA256, p256QLenBits, k.dBytes[:], digest)

	var zLimbs [p256Limbs]uint64
	beToLimbs(zLimbs[:], padLeft(bits2int(digest, p256QLenBits), 32))
	reduceOnce(zLimbs[:], p256OrderLimbs)

	for {
		kb := gen.Next()
		var kLimbs [p256Limbs]uint64
		beToLimbs(kLimbs[:], kb)
		if bignum.IsZero(kLimbs[:]) || bignum.Cmp(kLimbs[:], p256OrderLimbs) >= 0 {
			gen.Reject()
			continue
		}

		var kArr [32]byte
		limbsToBE(kArr[:], kLimbs[:])
		rp := p256.ScalarBaseMult(kArr).ToAffine()
		var rLimbs [p256Limbs]uint64
		rBytes := rp.X.Bytes()
		beToLimbs(rLimbs[:], rBytes[:])
		reduceOnce(rLimbs[:], p256OrderLimbs)
		if bignum.IsZero(rLimbs[:]) {
			gen.Reject()
			continue
		}

		// s = k^-1 * (z + r*d) mod n, all via Montgomery arithmetic mod n.
		var kMont, dMont, rMont, zMont [p256Limbs]uint64
		bignum.ToMont(kMont[:], kLimbs[:], p256OrderParams)
		bignum.ToMont(dMont[:], k.d[:], p256OrderParams)
		bignum.ToMont(rMont[:], rLimbs[:], p256OrderParams)
		bignum.ToMont(zMont[:], zLimbs[:], p256OrderParams)

		var rd, sum, kInv, sMont [p256Limbs]uint64
		bignum.MontMul(rd[:], rMont[:], dMont[:], p256OrderParams)
		bignum.Add(sum[:], rd[:], zMont[:])
		if bignum.Cmp(sum[:], p256OrderParams.M) >= 0 {
			bignum.Sub(sum[:], sum[:], p256OrderParams.M)
		}
		bignum.Inv(kInv[:], kMont[:], p256OrderParams)
		bignum.MontMul(sMont[:], kInv[:], sum[:], p256OrderParams)

		var sStd [p256Limbs]uint64
		bignum.Demont(sStd[:], sMont[:], p256OrderParams)
		if bignum.IsZero(sStd[:]) {
			gen.Reject()
			continue
		}

		if bignum.Cmp(sStd[:], p256HalfOrderLimbs) > 0 {
			bignum.Sub(sStd[:], p256OrderLimbs, sStd[:])
		}

		limbsToBE(r[:], rLimbs[:])
		limbsToBE(s[:], sStd[:])
		return r, s
	}
}

// Verify checks an ECDSA signature over a pre-hashed digest.
func (pub *PublicKeyP256) Verify(digest []byte, r, s [32]byte) bool {
	var rLimbs, sLimbs [p256Limbs]uint64
	beToLimbs(rLimbs[:], r[:])
	beToLimbs(sLimbs[:], s[:])
	if bignum.IsZero(rLimbs[:]) || bignum.Cmp(rLimbs[:], p256OrderLimbs) >= 0 {
		return false
	}
	if bignum.IsZero(sLimbs[:]) || bignum.Cmp(sLimbs[:], p256OrderLimbs) >= 0 {
		return false
	}

	var zLimbs [p256Limbs]uint64
	beToLimbs(zLimbs[:], padLeft(bits2int(digest, p256QLenBits), 32))
	reduceOnce(zLimbs[:], p256OrderLimbs)

	var sMont, zMont [p256Limbs]uint64
	bignum.ToMont(sMont[:], sLimbs[:], p256OrderParams)
	bignum.ToMont(zMont[:], zLimbs[:], p256OrderParams)

	var sInv [p256Limbs]uint64
	bignum.Inv(sInv[:], sMont[:], p256OrderParams)

	var rMont [p256Limbs]uint64
	bignum.ToMont(rMont[:], rLimbs[:], p256OrderParams)

	var u1Mont, u2Mont [p256Limbs]uint64
	bignum.MontMul(u1Mont[:], sInv[:], zMont[:], p256OrderParams)
	bignum.MontMul(u2Mont[:], sInv[:], rMont[:], p256OrderParams)

	var u1Std, u2Std [p256Limbs]uint64
	bignum.Demont(u1Std[:], u1Mont[:], p256OrderParams)
	bignum.Demont(u2Std[:], u2Mont[:], p256OrderParams)

	var u1B, u2B [32]byte
	limbsToBE(u1B[:], u1Std[:])
	limbsToBE(u2B[:], u2Std[:])

	p1 := p256.ScalarBaseMult(u1B)
	p2j := p256.ScalarMult(u2B, pub.point)
	var sumP p256.Jacobian
	p256.Add(&sumP, &p1, &p2j)
	if sumP.ToAffine().Infinity {
		return false
	}
	aff := sumP.ToAffine()

	var xLimbs [p256Limbs]uint64
	xb := aff.X.Bytes()
	beToLimbs(xLimbs[:], xb[:])
	reduceOnce(xLimbs[:], p256OrderLimbs)

	return bignum.Equal(xLimbs[:], rLimbs[:])
}

// ECDHP256 computes the X-coordinate shared secret for the given
// private scalar and peer public point.
func ECDHP256(priv *SigningKeyP256, peer *PublicKeyP256) [32]byte {
	shared := p256.ScalarMult(priv.dBytes, peer.point).ToAffine()
	return shared.X.Bytes()
}

func reduceOnce(limbs, modulus []uint64) {
	if bignum.Cmp(limbs, modulus) >= 0 {
		bignum.Sub(limbs, limbs, modulus)
	}
}

func beToLimbs(limbs []uint64, b []byte) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		var w uint64
		for j := 0; j < 8; j++ {
			w = w<<8 | uint64(b[len(b)-(i+1)*8+j])
		}
		limbs[i] = w
	}
}

func limbsToBE(b []byte, limbs []uint64) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		w := limbs[i]
		base := len(b) - (i+1)*8
		for j := 7; j >= 0; j-- {
			b[base+j] = byte(w)
			w >>= 8
		}
	}
}
