package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrVerificationCodeMismatch = errors.New("verification code is invalid or expired")

const (
	verificationKeyPrefix = "verification_code:"
	verificationCodeLen   = 6
)

// consumeCodeScript deletes the stored code only when it matches, so a code
// verifies at most once even under concurrent requests.
var consumeCodeScript = redis.NewScript(`
	local stored = redis.call('GET', KEYS[1])
	if stored == false or stored ~= ARGV[1] then
		return 0
	end
	redis.call('DEL', KEYS[1])
	return 1
`)

// VerificationService issues and checks one-time email verification codes.
type VerificationService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

type verificationService struct {
	log         *logrus.Logger
	redisClient *redis.Client
	mailer      Mailer
	ttl         time.Duration
}

func NewVerificationService(log *logrus.Logger, redisClient *redis.Client, mailer Mailer, ttl time.Duration) VerificationService {
	return &verificationService{
		log:         log,
		redisClient: redisClient,
		mailer:      mailer,
		ttl:         ttl,
	}
}

// SendCode stores a fresh code for email, replacing any previous one, and mails it.
func (s *verificationService) SendCode(ctx context.Context, email string) error {
	code, err := generateCode(verificationCodeLen)
	if err != nil {
		s.log.Warnf("Failed to generate verification code: %+v", err)
		return err
	}

	if err := s.redisClient.Set(ctx, verificationKey(email), code, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to store verification code in Redis: %+v", err)
		return err
	}

	body := fmt.Sprintf("<p>Your verification code is <b>%s</b>.</p><p>It expires in %d minutes.</p>",
		code, int(s.ttl.Minutes()))
	if err := s.mailer.Send(ctx, email, "Verify your account", body); err != nil {
		s.log.Warnf("Failed to send verification email: %+v", err)
		return err
	}

	s.log.WithField("email", email).Info("Verification code sent")
	return nil
}

func (s *verificationService) VerifyCode(ctx context.Context, email, code string) error {
	ok, err := consumeCodeScript.Run(ctx, s.redisClient, []string{verificationKey(email)}, code).Int()
	if err != nil {
		s.log.Warnf("Failed to check verification code: %+v", err)
		return err
	}
	if ok != 1 {
		return ErrVerificationCodeMismatch
	}
	return nil
}

func verificationKey(email string) string {
	return verificationKeyPrefix + strings.ToLower(email)
}

func generateCode(n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}
