package utils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// UnmarshalTask decodes an asynq task payload into dest.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// GenerateOrderNumber builds a human-readable order number like
// ART-20250812-493027. The random suffix keeps concurrent checkouts from
// colliding; the orders table still enforces uniqueness.
func GenerateOrderNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means something much bigger is wrong;
		// fall back to the clock.
		n = big.NewInt(now.UnixNano() % 1000000)
	}
	return fmt.Sprintf("ART-%s-%06d", now.Format("20060102"), n.Int64())
}

// GenerateSlug converts a title into a URL slug, transliterating Turkish
// characters first.
func GenerateSlug(title string) string {
	title = ReplaceTurkishChars(title)
	title = strings.ToLower(title)
	title = strings.ReplaceAll(title, " ", "-")

	reg := regexp.MustCompile("[^a-z0-9-]+")
	title = reg.ReplaceAllString(title, "")
	title = regexp.MustCompile("-+").ReplaceAllString(title, "-")

	return strings.Trim(title, "-")
}

// ReplaceTurkishChars maps Turkish letters to their ASCII equivalents.
func ReplaceTurkishChars(str string) string {
	replacements := map[string]string{
		"ç": "c", "ğ": "g", "ı": "i", "ö": "o", "ş": "s", "ü": "u",
		"Ç": "C", "Ğ": "G", "İ": "I", "Ö": "O", "Ş": "S", "Ü": "U",
	}

	for tr, ascii := range replacements {
		str = strings.ReplaceAll(str, tr, ascii)
	}

	return str
}
