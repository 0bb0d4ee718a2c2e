package container

import (
	"crypto/aes"
	"fmt"
)

// recAESKey is the fixed 32-byte key used by Rec recordings from container
// version 517 onward.
var recAESKey = [32]byte{
	0x54, 0x68, 0x79, 0x20, 0x6B, 0x65, 0x79, 0x20, 0x69, 0x73, 0x20,
	0x6D, 0x69, 0x6E, 0x65, 0x20, 0xA9, 0x20, 0x32, 0x30, 0x30, 0x36,
	0x20, 0x47, 0x42, 0x20, 0x4D, 0x6F, 0x6E, 0x61, 0x63, 0x6F,
}

// aesECB256 decrypts data using AES-256 in ECB mode. Go's
// crypto/cipher deliberately exposes no ECB cipher.BlockMode (it is
// considered an unsafe default for general use), so the per-block loop is
// written out directly, the same way Blowfish ECB is done by hand
// elsewhere in this module's ancestry.
type aesECB256 struct {
	block cipher
}

// cipher is the subset of cipher.Block this type needs, named locally so
// this file doesn't have to import crypto/cipher just for the interface.
type cipher interface {
	BlockSize() int
	Decrypt(dst, src []byte)
}

func newAESECB256(key [32]byte) (*aesECB256, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("container: creating AES cipher: %w", err)
	}
	return &aesECB256{block: block}, nil
}

// decrypt decrypts src (whose length must be a multiple of the AES block
// size) into a newly allocated slice of the same length.
func (a *aesECB256) decrypt(src []byte) ([]byte, error) {
	blockSize := a.block.BlockSize()
	if len(src)%blockSize != 0 {
		return nil, fmt.Errorf("container: ciphertext length %d is not a multiple of block size %d", len(src), blockSize)
	}

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += blockSize {
		a.block.Decrypt(dst[i:i+blockSize], src[i:i+blockSize])
	}
	return dst, nil
}
