package seal

import "github.com/helpdesklite/ticketgrid/internal/kvslot"

// SealedSlot wraps a kvslot.Slot so values are encrypted on Set and
// decrypted on Get. The fail-open cipher semantics pass through: a
// value that cannot be decrypted is returned as stored.
type SealedSlot struct {
	inner  kvslot.Slot
	cipher *Cipher
}

// WrapSlot composes a cipher over a slot.
func WrapSlot(inner kvslot.Slot, cipher *Cipher) *SealedSlot {
	return &SealedSlot{inner: inner, cipher: cipher}
}

// Get reads and decrypts the value stored under key.
func (s *SealedSlot) Get(key string) (string, bool, error) {
	value, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return "", ok, err
	}
	return s.cipher.Decrypt(value), true, nil
}

// Set encrypts value and stores it under key.
func (s *SealedSlot) Set(key, value string) error {
	return s.inner.Set(key, s.cipher.Encrypt(value))
}

// Delete removes key from the underlying slot.
func (s *SealedSlot) Delete(key string) error {
	return s.inner.Delete(key)
}

// Close closes the underlying slot.
func (s *SealedSlot) Close() error {
	return s.inner.Close()
}
