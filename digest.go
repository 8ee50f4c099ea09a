package cidgen

import (
	"crypto/sha256"
	"fmt"

	"github.com/multiformats/go-multihash"
	"lukechampine.com/blake3"
)

// HashAlgorithm identifies a hash function by its multihash code.
type HashAlgorithm uint64

// Hash algorithms recognized by this package. Only SHA2_256 and BLAKE3 have
// a wired digest implementation; the others are valid identifiers that fail
// with ErrUnknownHashType when a digest is requested. They are kept distinct
// from arbitrary out-of-enum codes so that callers can tell a planned
// algorithm apart from garbage.
const (
	SHA1        = HashAlgorithm(multihash.SHA1)
	SHA2_256    = HashAlgorithm(multihash.SHA2_256)
	SHA2_512    = HashAlgorithm(multihash.SHA2_512)
	SHA3_512    = HashAlgorithm(multihash.SHA3_512)
	BLAKE2B_512 = HashAlgorithm(multihash.BLAKE2B_MIN + 63)
	BLAKE2S_256 = HashAlgorithm(multihash.BLAKE2S_MIN + 31)
	BLAKE3      = HashAlgorithm(multihash.BLAKE3)
)

func (a HashAlgorithm) String() string {
	if name, ok := multihash.Codes[uint64(a)]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint64(a))
}

// Digest is a fixed-length hash sum tagged with the algorithm that produced
// it.
type Digest struct {
	alg HashAlgorithm
	sum []byte
}

// digest computes the single-shot sum of data with the requested algorithm.
func digest(data []byte, alg HashAlgorithm) (Digest, error) {
	switch alg {
	case SHA2_256:
		sum := sha256.Sum256(data)
		return Digest{alg: alg, sum: sum[:]}, nil
	case BLAKE3:
		sum := blake3.Sum256(data)
		return Digest{alg: alg, sum: sum[:]}, nil
	default:
		return Digest{}, ErrUnknownHashType{alg}
	}
}
