// Package aes implements the AES-128 and AES-256 forward block
// cipher (FIPS 197), encrypt-direction only: the AEAD constructions
// this core supports (CTR-based GHASH-GCM) never need the inverse
// cipher. AES-192 is not implemented.
//
// This is a textbook byte-oriented implementation: S-box substitution
// is a 256-entry table lookup and MixColumns uses the xtime GF(2^8)
// doubling step. Table lookups indexed by cipher state are not
// cache-timing-constant; see the module's design notes for why a
// bitsliced or hardware-backed implementation was not pursued.
package aes

import "coreprim.dev/coreerr"

const BlockSize = 16

var sbox = [256]byte{
	0x63, 0x7C, 0x77, 0x7B, 0xF2, 0x6B, 0x6F, 0xC5, 0x30, 0x01, 0x67, 0x2B, 0xFE, 0xD7, 0xAB, 0x76,
	0xCA, 0x82, 0xC9, 0x7D, 0xFA, 0x59, 0x47, 0xF0, 0xAD, 0xD4, 0xA2, 0xAF, 0x9C, 0xA4, 0x72, 0xC0,
	0xB7, 0xFD, 0x93, 0x26, 0x36, 0x3F, 0xF7, 0xCC, 0x34, 0xA5, 0xE5, 0xF1, 0x71, 0xD8, 0x31, 0x15,
	0x04, 0xC7, 0x23, 0xC3, 0x18, 0x96, 0x05, 0x9A, 0x07, 0x12, 0x80, 0xE2, 0xEB, 0x27, 0xB2, 0x75,
	0x09, 0x83, 0x2C, 0x1A, 0x1B, 0x6E, 0x5A, 0xA0, 0x52, 0x3B, 0xD6, 0xB3, 0x29, 0xE3, 0x2F, 0x84,
	0x53, 0xD1, 0x00, 0xED, 0x20, 0xFC, 0xB1, 0x5B, 0x6A, 0xCB, 0xBE, 0x39, 0x4A, 0x4C, 0x58, 0xCF,
	0xD0, 0xEF, 0xAA, 0xFB, 0x43, 0x4D, 0x33, 0x85, 0x45, 0xF9, 0x02, 0x7F, 0x50, 0x3C, 0x9F, 0xA8,
	0x51, 0xA3, 0x40, 0x8F, 0x92, 0x9D, 0x38, 0xF5, 0xBC, 0xB6, 0xDA, 0x21, 0x10, 0xFF, 0xF3, 0xD2,
	0xCD, 0x0C, 0x13, 0xEC, 0x5F, 0x97, 0x44, 0x17, 0xC4, 0xA7, 0x7E, 0x3D, 0x64, 0x5D, 0x19, 0x73,
	0x60, 0x81, 0x4F, 0xDC, 0x22, 0x2A, 0x90, 0x88, 0x46, 0xEE, 0xB8, 0x14, 0xDE, 0x5E, 0x0B, 0xDB,
	0xE0, 0x32, 0x3A, 0x0A, 0x49, 0x06, 0x24, 0x5C, 0xC2, 0xD3, 0xAC, 0x62, 0x91, 0x95, 0xE4, 0x79,
	0xE7, 0xC8, 0x37, 0x6D, 0x8D, 0xD5, 0x4E, 0xA9, 0x6C, 0x56, 0xF4, 0xEA, 0x65, 0x7A, 0xAE, 0x08,
	0xBA, 0x78, 0x25, 0x2E, 0x1C, 0xA6, 0xB4, 0xC6, 0xE8, 0xDD, 0x74, 0x1F, 0x4B, 0xBD, 0x8B, 0x8A,
	0x70, 0x3E, 0xB5, 0x66, 0x48, 0x03, 0xF6, 0x0E, 0x61, 0x35, 0x57, 0xB9, 0x86, 0xC1, 0x1D, 0x9E,
	0xE1, 0xF8, 0x98, 0x11, 0x69, 0xD9, 0x8E, 0x94, 0x9B, 0x1E, 0x87, 0xE9, 0xCE, 0x55, 0x28, 0xDF,
	0x8C, 0xA1, 0x89, 0x0D, 0xBF, 0xE6, 0x42, 0x68, 0x41, 0x99, 0x2D, 0x0F, 0xB0, 0x54, 0xBB, 0x16,
}

var rcon = [11]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1B, 0x36}

func xtime(b byte) byte {
	hi := b & 0x80
	b <<= 1
	if hi != 0 {
		b ^= 0x1B
	}
	return b
}

func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

// Cipher holds an expanded AES round-key schedule.
type Cipher struct {
	roundKeys [][4]byte // Nb*(Nr+1) words of 4 bytes each
	rounds    int
}

// New expands a 16-byte (AES-128) or 32-byte (AES-256) key.
func New(key []byte) (*Cipher, error) {
	var nk, nr int
	switch len(key) {
	case 16:
		nk, nr = 4, 10
	case 32:
		nk, nr = 8, 14
	default:
		return nil, coreerr.ErrWrongLength
	}

	nb := 4
	words := make([][4]byte, nb*(nr+1))
	for i := 0; i < nk; i++ {
		copy(words[i][:], key[4*i:4*i+4])
	}
	for i := nk; i < nb*(nr+1); i++ {
		temp := words[i-1]
		if i%nk == 0 {
			temp = rotWord(temp)
			temp = subWord(temp)
			temp[0] ^= rcon[i/nk]
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		for j := 0; j < 4; j++ {
			words[i][j] = words[i-nk][j] ^ temp[j]
		}
	}
	return &Cipher{roundKeys: words, rounds: nr}, nil
}

func rotWord(w [4]byte) [4]byte { return [4]byte{w[1], w[2], w[3], w[0]} }

func subWord(w [4]byte) [4]byte {
	return [4]byte{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

// Encrypt encrypts one 16-byte block in place from src into dst.
func (c *Cipher) Encrypt(dst, src []byte) {
	var state [4][4]byte
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			state[row][col] = src[col*4+row]
		}
	}

	addRoundKey(&state, c.roundKeys[0:4])
	for round := 1; round < c.rounds; round++ {
		subBytes(&state)
		shiftRows(&state)
		mixColumns(&state)
		addRoundKey(&state, c.roundKeys[round*4:round*4+4])
	}
	subBytes(&state)
	shiftRows(&state)
	addRoundKey(&state, c.roundKeys[c.rounds*4:c.rounds*4+4])

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			dst[col*4+row] = state[row][col]
		}
	}
}

func addRoundKey(state *[4][4]byte, rk [][4]byte) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			state[row][col] ^= rk[col][row]
		}
	}
}

func subBytes(state *[4][4]byte) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			state[row][col] = sbox[state[row][col]]
		}
	}
}

func shiftRows(state *[4][4]byte) {
	state[1] = [4]byte{state[1][1], state[1][2], state[1][3], state[1][0]}
	state[2] = [4]byte{state[2][2], state[2][3], state[2][0], state[2][1]}
	state[3] = [4]byte{state[3][3], state[3][0], state[3][1], state[3][2]}
}

func mixColumns(state *[4][4]byte) {
	for col := 0; col < 4; col++ {
		a0, a1, a2, a3 := state[0][col], state[1][col], state[2][col], state[3][col]
		state[0][col] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		state[1][col] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		state[2][col] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		state[3][col] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
}
