package cidgen

import (
	"github.com/mr-tron/base58"
	base32 "github.com/multiformats/go-base32"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"
)

// Base selects the textual encoding of a CID.
type Base string

const (
	Base32 Base = "base32"
	Base58 Base = "base58"
)

// Multibase prefix characters, one per supported Base.
const (
	base32Prefix = "b"
	base58Prefix = "z"
)

const cidVersion = 1

// base32LowerNoPad is the multibase base32 alphabet: lowercase, unpadded.
var base32LowerNoPad = base32.NewEncodingCI("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// multihash wraps d in its self-describing envelope: varint algorithm code,
// varint digest length, digest bytes.
func (d Digest) multihash() multihash.Multihash {
	code := uint64(d.alg)
	size := uint64(len(d.sum))
	mh := make([]byte, 0, varint.UvarintSize(code)+varint.UvarintSize(size)+len(d.sum))
	mh = append(mh, varint.ToUvarint(code)...)
	mh = append(mh, varint.ToUvarint(size)...)
	mh = append(mh, d.sum...)
	return multihash.Multihash(mh)
}

// encodeCid prepends the CIDv1 header to mh, encodes the result in the
// requested base and prepends the multibase prefix. The raw multicodec is
// the only content type in scope. Base validity is deliberately checked
// here, after hashing has already happened.
func encodeCid(mh multihash.Multihash, base Base) (string, error) {
	suffix := buffers.leaseBuffer()
	defer suffix.Close()
	suffix.maybeGrow(2 + len(mh))
	suffix.append(varint.ToUvarint(cidVersion)...)
	suffix.append(varint.ToUvarint(uint64(multicodec.Raw))...)
	suffix.append(mh...)

	switch base {
	case Base32:
		return base32Prefix + base32LowerNoPad.EncodeToString(suffix.buf), nil
	case Base58:
		return base58Prefix + base58.Encode(suffix.buf), nil
	default:
		return "", ErrInvalidBase{base}
	}
}
