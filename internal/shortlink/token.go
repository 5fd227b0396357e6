package shortlink

import "github.com/jaevor/go-nanoid"

// TokenAlphabet is the character set tokens are drawn from.
const TokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenLength is the fixed length of every generated token.
const TokenLength = 9

// TokenGenerator produces unguessable short tokens.
type TokenGenerator func() string

// NewTokenGenerator returns a generator drawing uniformly from the
// alphanumeric alphabet with a cryptographically strong source. Generation
// does not guarantee uniqueness; the store's insert contract does, and
// callers retry on ErrDuplicateToken.
func NewTokenGenerator() (TokenGenerator, error) {
	gen, err := nanoid.CustomASCII(TokenAlphabet, TokenLength)
	if err != nil {
		return nil, err
	}

	return TokenGenerator(gen), nil
}
