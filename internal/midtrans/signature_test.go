package midtrans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	sig := Signature("kopi-rupa-a1b2c3d4-1700000000000", "200", "140000.00", "server-key")

	// SHA-512 hex is 128 characters and deterministic for the same input
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Signature("kopi-rupa-a1b2c3d4-1700000000000", "200", "140000.00", "server-key"))

	// Any single changed input produces a different signature
	assert.NotEqual(t, sig, Signature("kopi-rupa-a1b2c3d4-1700000000001", "200", "140000.00", "server-key"))
	assert.NotEqual(t, sig, Signature("kopi-rupa-a1b2c3d4-1700000000000", "201", "140000.00", "server-key"))
	assert.NotEqual(t, sig, Signature("kopi-rupa-a1b2c3d4-1700000000000", "200", "140000.01", "server-key"))
	assert.NotEqual(t, sig, Signature("kopi-rupa-a1b2c3d4-1700000000000", "200", "140000.00", "other-key"))
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("order-1", "200", "50000.00", "server-key")

	assert.True(t, VerifySignature("order-1", "200", "50000.00", "server-key", sig))
	assert.False(t, VerifySignature("order-1", "200", "50000.00", "server-key", "deadbeef"))
	assert.False(t, VerifySignature("order-1", "200", "50000.00", "wrong-key", sig))
	assert.False(t, VerifySignature("order-2", "200", "50000.00", "server-key", sig))
	assert.False(t, VerifySignature("order-1", "200", "50000.00", "server-key", ""))
}
