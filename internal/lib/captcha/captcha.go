// Package captcha issues arithmetic challenges for the profile
// registration form and checks the answers.
//
// Challenges live in Redis under a random key with a TTL. An answer can be
// checked once: the key is removed by the check whatever the outcome.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/fefu-exchange/internal/validation"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "captcha:"

// Challenge is sent to the client. The answer stays in Redis.
type Challenge struct {
	Key       string `json:"key"`
	Question  string `json:"question"`
	ExpiresIn int    `json:"expires_in"`
}

// Store keeps challenges in Redis.
type Store struct {
	rdb redis.UniversalClient
	ttl time.Duration
	// intn returns a number in [0, n).
	intn func(n int) int
}

// NewStore creates a Store whose challenges expire after ttl.
func NewStore(rdb redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl, intn: rand.IntN}
}

// Issue creates a new challenge.
func (s *Store) Issue(ctx context.Context) (*Challenge, error) {
	a, b := s.intn(9)+1, s.intn(9)+1

	var question string
	var answer int
	switch s.intn(3) {
	case 0:
		question, answer = fmt.Sprintf("%d + %d", a, b), a+b
	case 1:
		if a < b {
			a, b = b, a
		}
		question, answer = fmt.Sprintf("%d - %d", a, b), a-b
	default:
		question, answer = fmt.Sprintf("%d × %d", a, b), a*b
	}

	key := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+key, strconv.Itoa(answer), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("storing captcha: %w", err)
	}

	return &Challenge{
		Key:       key,
		Question:  question + " = ?",
		ExpiresIn: int(s.ttl.Seconds()),
	}, nil
}

// Verify reports whether answer solves the challenge key. Malformed,
// unknown, expired and already used keys verify as false.
func (s *Store) Verify(ctx context.Context, key, answer string) (bool, error) {
	if !validation.IsValidUUID(key) {
		return false, nil
	}

	expected, err := s.rdb.GetDel(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("loading captcha: %w", err)
	}

	return strings.TrimSpace(answer) == expected, nil
}
