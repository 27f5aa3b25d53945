package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

type User struct {
	ID        uint
	Name      string
	Password  string // bcrypt hash
	CreatedAt time.Time
}

// Login verifies the admin credentials and mints a session token the server
// layer sets as an http-only cookie. A missing user and a wrong password are
// indistinguishable to the caller.
func (u Usecase) Login(ctx context.Context, name, password string) (string, error) {
	user, err := u.repo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	return u.mintSession(user.ID, time.Now().Add(sessionTTL)), nil
}

// Session tokens are "<userID>.<unix expiry>.<base64 hmac>".
func (u Usecase) mintSession(userID uint, expires time.Time) string {
	payload := fmt.Sprintf("%d.%d", userID, expires.Unix())
	return payload + "." + u.sign(payload)
}

func (u Usecase) VerifySession(token string) (uint, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, ErrUnauthorized
	}

	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(u.sign(payload)), []byte(parts[2])) {
		return 0, ErrUnauthorized
	}

	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > exp {
		return 0, ErrUnauthorized
	}

	userID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, ErrUnauthorized
	}

	return uint(userID), nil
}

func (u Usecase) sign(payload string) string {
	mac := hmac.New(sha256.New, u.sessionSecret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
