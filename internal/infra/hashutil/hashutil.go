package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// ETag returns the hex sha256 of the JSON encoding of v. It logs and returns
// an empty string when v cannot be encoded.
func ETag(logger *zap.Logger, label string, v any) string {
	return hashWithLogger(logger, label, func() (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	})
}

// CombinedETag hashes a set of ETags in order.
func CombinedETag(logger *zap.Logger, etags ...string) string {
	return ETag(logger, "catalog", etags)
}

func hashWithLogger(logger *zap.Logger, label string, fn func() (string, error)) string {
	etag, err := fn()
	if err != nil {
		if logger != nil {
			logger.Warn(fmt.Sprintf("%s hash failed", label), zap.Error(err))
		}
		return ""
	}
	return etag
}
