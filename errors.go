package cidgen

import (
	"fmt"
)

type (
	ErrInvalidDataType struct {
		value any
	}
	ErrEncodingFailure struct {
		err error
	}
	ErrUnknownHashType struct {
		alg HashAlgorithm
	}
	ErrInvalidBase struct {
		base Base
	}
)

func (e ErrInvalidDataType) Error() string {
	return fmt.Sprintf("cannot compute CID of %T: input must be text or a record", e.value)
}

func (e ErrEncodingFailure) Error() string {
	return fmt.Sprintf("failed to serialize record to canonical bytes: %s", e.err.Error())
}

func (e ErrEncodingFailure) Unwrap() error {
	return e.err
}

func (e ErrUnknownHashType) Error() string {
	return fmt.Sprintf("hash type %s has no digest implementation", e.alg)
}

func (e ErrInvalidBase) Error() string {
	return fmt.Sprintf("base must be one of %s or %s, got: %s", Base32, Base58, e.base)
}
