// Package cpufeature performs one-time CPU feature detection and exposes a
// read-only dispatch token. Detection happens once; the chosen
// implementation is selected per call via the token returned by Get, never
// by re-probing the CPU. Dispatch never depends on a secret.
package cpufeature

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
	templexxxcpu "github.com/templexxx/cpu"
)

// Token is an immutable snapshot of the CPU features this process can rely
// on. It is safe to share across goroutines.
type Token struct {
	HasAESNI    bool
	HasAVX2     bool
	HasAVX512F  bool
	HasSHA      bool
	HasPCLMULQD bool
}

var (
	once  sync.Once
	token Token
)

// Get returns the process-wide feature token, performing detection on the
// first call. Every subsequent call returns the same value.
func Get() Token {
	once.Do(detect)
	return token
}

// detect consults two independent feature-probe sources, the way a
// production core hedges against either one being wrong on an exotic host.
func detect() {
	token = Token{
		HasAESNI:    cpuid.CPU.Supports(cpuid.AESNI),
		HasAVX2:     cpuid.CPU.Supports(cpuid.AVX2),
		HasAVX512F:  cpuid.CPU.Supports(cpuid.AVX512F),
		HasSHA:      cpuid.CPU.Supports(cpuid.SHA),
		HasPCLMULQD: cpuid.CPU.Supports(cpuid.PCLMULQDQ),
	}
	// Cross-check against the second detector; templexxx/cpu agreeing on
	// AVX2 is what gates the accelerated SHA-256 backend in package sha256.
	if !templexxxcpu.X86.HasAVX2 {
		token.HasAVX2 = false
	}
}

// Reset clears the cached token so detection runs again on the next Get.
// Exists only for tests that want to force a code path.
func Reset() {
	once = sync.Once{}
}
