package signing

import (
	"crypto/rand"
	"hash"

	"coreprim.dev/bignum"
	"coreprim.dev/coreerr"
	"coreprim.dev/curve/p384"
	"coreprim.dev/sha512"
)

func newSHA384() hash.Hash { return sha512.New384() }

const p384Limbs = 6
const p384QLenBits = 384

var p384OrderLimbs = []uint64{
	0xecec196accc52973, 0x581a0db248b0a77a, 0xc7634d81f4372ddf,
	0xffffffffffffffff, 0xffffffffffffffff, 0xffffffffffffffff,
}

var p384OrderParams = bignum.NewMontParams(p384OrderLimbs)

var p384HalfOrderLimbs = computeHalfOrder(p384OrderLimbs)

// SigningKeyP384 is a P-384 ECDSA/ECDH private key.
type SigningKeyP384 struct {
	d      [p384Limbs]uint64
	pub    p384.Affine
	dBytes [48]byte
}

// PublicKeyP384 is a P-384 public key.
type PublicKeyP384 struct {
	point p384.Affine
}

// GenerateP384Key draws a uniformly random private scalar.
func GenerateP384Key() (*SigningKeyP384, error) {
	for {
		var raw [48]byte
		if _, err := rand.Read(raw[:]); err != nil {
			return nil, err
		}
		var d [p384Limbs]uint64
		beToLimbs(d[:], raw[:])
		if bignum.IsZero(d[:]) || bignum.Cmp(d[:], p384OrderLimbs) >= 0 {
			continue
		}
		jp := p384.ScalarBaseMult(raw)
		return &SigningKeyP384{d: d, pub: jp.ToAffine(), dBytes: raw}, nil
	}
}

// NewSigningKeyP384 builds a signing key from a 48-byte scalar.
func NewSigningKeyP384(raw [48]byte) (*SigningKeyP384, error) {
	var d [p384Limbs]uint64
	beToLimbs(d[:], raw[:])
	if bignum.IsZero(d[:]) || bignum.Cmp(d[:], p384OrderLimbs) >= 0 {
		return nil, coreerr.ErrOutOfRange
	}
	jp := p384.ScalarBaseMult(raw)
	return &SigningKeyP384{d: d, pub: jp.ToAffine(), dBytes: raw}, nil
}

func (k *SigningKeyP384) Public() PublicKeyP384 { return PublicKeyP384{point: k.pub} }

// Sign produces a deterministic (RFC 6979) ECDSA signature over a
// pre-hashed digest, normalizing s to the lower half of the order.
func (k *SigningKeyP384) Sign(digest []byte) (r, s [48]byte) {
	gen := newRFC6979(newSHA384, p384QLenBits, k.dBytes[:], digest)

	var zLimbs [p384Limbs]uint64
	beToLimbs(zLimbs[:], padLeft(bits2int(digest, p384QLenBits), 48))
	reduceOnce(zLimbs[:], p384OrderLimbs)

	for {
		kb := gen.Next()
		var kLimbs [p384Limbs]uint64
		beToLimbs(kLimbs[:], kb)
		if bignum.IsZero(kLimbs[:]) || bignum.Cmp(kLimbs[:], p384OrderLimbs) >= 0 {
			gen.Reject()
			continue
		}

		var kArr [48]byte
		limbsToBE(kArr[:], kLimbs[:])
		rp := p384.ScalarBaseMult(kArr).ToAffine()
		var rLimbs [p384Limbs]uint64
		rBytes := rp.X.Bytes()
		beToLimbs(rLimbs[:], rBytes[:])
		reduceOnce(rLimbs[:], p384OrderLimbs)
		if bignum.IsZero(rLimbs[:]) {
			gen.Reject()
			continue
		}

		var kMont, dMont, rMont, zMont [p384Limbs]uint64
		bignum.ToMont(kMont[:], kLimbs[:], p384OrderParams)
		bignum.ToMont(dMont[:], k.d[:], p384OrderParams)
		bignum.ToMont(rMont[:], rLimbs[:], p384OrderParams)
		bignum.ToMont(zMont[:], zLimbs[:], p384OrderParams)

		var rd, sum, kInv, sMont [p384Limbs]uint64
		bignum.MontMul(rd[:], rMont[:], dMont[:], p384OrderParams)
		bignum.Add(sum[:], rd[:], zMont[:])
		if bignum.Cmp(sum[:], p384OrderParams.M) >= 0 {
			bignum.Sub(sum[:], sum[:], p384OrderParams.M)
		}
		bignum.Inv(kInv[:], kMont[:], p384OrderParams)
		bignum.MontMul(sMont[:], kInv[:], sum[:], p384OrderParams)

		var sStd [p384Limbs]uint64
		bignum.Demont(sStd[:], sMont[:], p384OrderParams)
		if bignum.IsZero(sStd[:]) {
			gen.Reject()
			continue
		}

		if bignum.Cmp(sStd[:], p384HalfOrderLimbs) > 0 {
			bignum.Sub(sStd[:], p384OrderLimbs, sStd[:])
		}

		limbsToBE(r[:], rLimbs[:])
		limbsToBE(s[:], sStd[:])
		return r, s
	}
}

// Verify checks an ECDSA signature over a pre-hashed digest.
func (pub *PublicKeyP384) Verify(digest []byte, r, s [48]byte) bool {
	var rLimbs, sLimbs [p384Limbs]uint64
	beToLimbs(rLimbs[:], r[:])
	beToLimbs(sLimbs[:], s[:])
	if bignum.IsZero(rLimbs[:]) || bignum.Cmp(rLimbs[:], p384OrderLimbs) >= 0 {
		return false
	}
	if bignum.IsZero(sLimbs[:]) || bignum.Cmp(sLimbs[:], p384OrderLimbs) >= 0 {
		return false
	}

	var zLimbs [p384Limbs]uint64
	beToLimbs(zLimbs[:], padLeft(bits2int(digest, p384QLenBits), 48))
	reduceOnce(zLimbs[:], p384OrderLimbs)

	var sMont, zMont [p384Limbs]uint64
	bignum.ToMont(sMont[:], sLimbs[:], p384OrderParams)
	bignum.ToMont(zMont[:], zLimbs[:], p384OrderParams)

	var sInv [p384Limbs]uint64
	bignum.Inv(sInv[:], sMont[:], p384OrderParams)

	var rMont [p384Limbs]uint64
	bignum.ToMont(rMont[:], rLimbs[:], p384OrderParams)

	var u1Mont, u2Mont [p384Limbs]uint64
	bignum.MontMul(u1Mont[:], sInv[:], zMont[:], p384OrderParams)
	bignum.MontMul(u2Mont[:], sInv[:], rMont[:], p384OrderParams)

	var u1Std, u2Std [p384Limbs]uint64
	bignum.Demont(u1Std[:], u1Mont[:], p384OrderParams)
	bignum.Demont(u2Std[:], u2Mont[:], p384OrderParams)

	var u1B, u2B [48]byte
	limbsToBE(u1B[:], u1Std[:])
	limbsToBE(u2B[:], u2Std[:])

	p1 := p384.ScalarBaseMult(u1B)
	p2j := p384.ScalarMult(u2B, pub.point)
	var sumP p384.Jacobian
	p384.Add(&sumP, &p1, &p2j)
	if sumP.ToAffine().Infinity {
		return false
	}
	aff := sumP.ToAffine()

	var xLimbs [p384Limbs]uint64
	xb := aff.X.Bytes()
	beToLimbs(xLimbs[:], xb[:])
	reduceOnce(xLimbs[:], p384OrderLimbs)

	return bignum.Equal(xLimbs[:], rLimbs[:])
}

// ECDHP384 computes the X-coordinate shared secret for the given
// private scalar and peer public point.
func ECDHP384(priv *SigningKeyP384, peer *PublicKeyP384) [48]byte {
	shared := p384.ScalarMult(priv.dBytes, peer.point).ToAffine()
	return shared.X.Bytes()
}
