package random

import (
	"crypto/rand"
	"math/big"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// The code alphabet leaves out characters that read ambiguously on a bar TV (0/O, 1/I).
var codeAlphabet = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// Letters returns n random letters from the ASCII alphabet.
func Letters(n uint) (string, error) {
	return pick(allowedLetters, n)
}

// Code returns an n-character session code suitable for reading out loud.
func Code(n uint) (string, error) {
	return pick(codeAlphabet, n)
}

func pick(alphabet []rune, n uint) (string, error) {
	out := make([]rune, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
