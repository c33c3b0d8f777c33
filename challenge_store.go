package goSignup

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

const challengeRecordVersionV1 = 1

var (
	errChallengeNotFound         = errors.New("otp challenge not found")
	errChallengeCorrupt          = errors.New("otp challenge record corrupt")
	errChallengeRedisUnavailable = errors.New("otp challenge redis unavailable")
)

// otpChallengeStore is an append/read log of challenges keyed by identity.
// Each identity maps to a Redis list with the newest record at index 0.
// Records are never updated and redemption never deletes them; older entries
// are invalidated purely by recency. The list is trimmed to historyLimit so
// the log does not grow without bound.
type otpChallengeStore struct {
	redis        *redis.Client
	prefix       string
	historyLimit int
}

func newOTPChallengeStore(redisClient *redis.Client, prefix string, historyLimit int) *otpChallengeStore {
	return &otpChallengeStore{
		redis:        redisClient,
		prefix:       prefix,
		historyLimit: historyLimit,
	}
}

func (s *otpChallengeStore) key(email string) string {
	return s.prefix + ":" + email
}

// Append issues a new challenge record for the identity. The push and the
// history trim run in one transaction so a reader never observes a list
// longer than the cap.
func (s *otpChallengeStore) Append(ctx context.Context, email string, code int64, createdAt time.Time) error {
	encoded, err := encodeChallengeRecord(code, createdAt.Unix())
	if err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	pipe.LPush(ctx, s.key(email), encoded)
	if s.historyLimit > 0 {
		pipe.LTrim(ctx, s.key(email), 0, int64(s.historyLimit-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", errChallengeRedisUnavailable, err)
	}
	return nil
}

// MostRecent returns the latest challenge for the identity, or
// errChallengeNotFound when none exists.
func (s *otpChallengeStore) MostRecent(ctx context.Context, email string) (OtpChallenge, error) {
	data, err := s.redis.LIndex(ctx, s.key(email), 0).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return OtpChallenge{}, errChallengeNotFound
		}
		return OtpChallenge{}, fmt.Errorf("%w: %v", errChallengeRedisUnavailable, err)
	}

	code, createdAt, err := decodeChallengeRecord(data)
	if err != nil {
		return OtpChallenge{}, err
	}

	return OtpChallenge{
		Email:     email,
		Code:      code,
		CreatedAt: time.Unix(createdAt, 0),
	}, nil
}

func encodeChallengeRecord(code int64, createdAt int64) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(challengeRecordVersionV1)
	if err := binary.Write(&buf, binary.BigEndian, code); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, createdAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decodeChallengeRecord(data []byte) (int64, int64, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errChallengeCorrupt, err)
	}
	if version != challengeRecordVersionV1 {
		return 0, 0, fmt.Errorf("%w: unknown version %d", errChallengeCorrupt, version)
	}

	var code, createdAt int64
	if err := binary.Read(reader, binary.BigEndian, &code); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errChallengeCorrupt, err)
	}
	if err := binary.Read(reader, binary.BigEndian, &createdAt); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errChallengeCorrupt, err)
	}
	if _, err := reader.ReadByte(); err != io.EOF {
		return 0, 0, fmt.Errorf("%w: trailing bytes", errChallengeCorrupt)
	}

	return code, createdAt, nil
}
