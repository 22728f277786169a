package resettokengenerator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"authms/internal/core/domain/account"
)

// 16 random bytes give 128 bits of entropy, hex encoding keeps the token
// URL-safe with no separator characters.
const tokenByteLength = 16

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() account.ResetToken {
	b := make([]byte, tokenByteLength)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return account.ResetToken(hex.EncodeToString(b))
}
