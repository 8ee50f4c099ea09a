// Package cidgen computes CIDv1 content identifiers for text and
// structured-record inputs, byte-identical to the identifiers an
// IPFS-compatible content-addressed store assigns to the same bytes.
//
// The pipeline is: canonical bytes, multihash digest, CIDv1 header with the
// raw multicodec, multibase string. Every stage has a fixed external binary
// layout; the conformance vectors in the tests pin the output against the
// reference construction.
package cidgen

import (
	"sync/atomic"
)

// MaxRawBlockSize is the largest input, in bytes, that IPFS-compatible
// networks accept as a single raw block. Sum does not enforce it; staying
// under it is the caller's contract.
const MaxRawBlockSize = 256 << 10

var defaultBase atomic.Value // Base

// SetDefaultBase sets the process-wide base used by Sum calls that carry no
// WithBase option. Any value is accepted here; an unrecognized base
// surfaces as ErrInvalidBase from Sum, after hashing. Callers changing the
// default concurrently with in-flight Sum calls get whichever value each
// call happens to read.
func SetDefaultBase(b Base) {
	defaultBase.Store(b)
}

// DefaultBase returns the process-wide base, Base32 when unset.
func DefaultBase() Base {
	if b, ok := defaultBase.Load().(Base); ok && b != "" {
		return b
	}
	return Base32
}

// Sum computes the CID of v. The hash algorithm defaults to SHA2-256 and
// the base to DefaultBase; both can be overridden per call with options.
//
// Repeated calls with the same value and options return the same string.
// Failures are terminal and typed: ErrInvalidDataType, ErrEncodingFailure,
// ErrUnknownHashType or ErrInvalidBase. No default is ever substituted for
// a bad algorithm or base.
func Sum(v Value, options ...Option) (string, error) {
	opts, err := getOpts(options)
	if err != nil {
		return "", err
	}

	var data []byte
	switch v.kind {
	case textValue:
		data = v.text
	case recordValue:
		buf := buffers.leaseBuffer()
		defer buf.Close()
		if err := v.record.appendCanonicalJSON(buf); err != nil {
			return "", err
		}
		data = buf.buf
	default:
		return "", ErrInvalidDataType{v}
	}

	d, err := digest(data, opts.hashType)
	if err != nil {
		return "", err
	}
	return encodeCid(d.multihash(), opts.base)
}
