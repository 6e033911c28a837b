package helpers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func deriveKey(secret string) []byte {
	hash := sha256.Sum256([]byte(secret))
	return hash[:]
}

var secretKey = deriveKey(os.Getenv("JWT_SECRET"))

// EncryptExternalID packs a gift id and the contributing user's id into an
// opaque token used as the payment gateway's external id, so the webhook
// can resolve both without a lookup table.
func EncryptExternalID(giftID, userID uuid.UUID) string {
	plaintext := fmt.Sprintf("%s|%s", giftID.String(), userID.String())

	block, _ := aes.NewCipher(secretKey)
	gcm, _ := cipher.NewGCM(block)
	nonce := make([]byte, gcm.NonceSize())
	io.ReadFull(rand.Reader, nonce)

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(ciphertext)
}

func DecryptExternalID(encrypted string) (giftID, userID uuid.UUID, err error) {
	data, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	block, err := aes.NewCipher(secretKey)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid cipher text")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	parts := strings.Split(string(plaintext), "|")
	if len(parts) != 2 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid plaintext format")
	}

	giftID, err = uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid gift ID format")
	}
	userID, err = uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user ID format")
	}
	return giftID, userID, nil
}
