package unlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeUnlock = "unlock"
	issuer          = "numguru"
)

var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenMismatch = errors.New("token does not unlock this reading")
)

// Claims bind a paid order to one reading.
type Claims struct {
	ReadingKey string `json:"reading_key"`
	OrderID    string `json:"order_id"`
	PaymentID  string `json:"payment_id,omitempty"`
	TokenType  string `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service interface {
	Issue(readingKey, orderID, paymentID string) (Token, error)
	Validate(tokenString string) (Claims, error)
	// Unlocks reports whether tokenString is valid and bound to readingKey.
	Unlocks(tokenString, readingKey string) (bool, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *HMACService) Issue(readingKey, orderID, paymentID string) (Token, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || readingKey == "" {
		return Token{}, ErrTokenInvalid
	}

	now := s.now().UTC()
	exp := now.Add(s.expiresIn)

	c := Claims{
		ReadingKey: readingKey,
		OrderID:    orderID,
		PaymentID:  paymentID,
		TokenType:  TokenTypeUnlock,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   orderID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

func (s *HMACService) Validate(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != TokenTypeUnlock || c.ReadingKey == "" {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

func (s *HMACService) Unlocks(tokenString, readingKey string) (bool, error) {
	c, err := s.Validate(tokenString)
	if err != nil {
		return false, err
	}
	if c.ReadingKey != readingKey {
		return false, ErrTokenMismatch
	}
	return true, nil
}

// ReadingKey identifies a reading by its inputs: the lower-cased name with
// collapsed whitespace and the birth date as YYYY-MM-DD.
func ReadingKey(name string, dob time.Time) string {
	norm := strings.ToLower(strings.Join(strings.Fields(name), " "))
	sum := sha256.Sum256([]byte(norm + "|" + dob.Format("2006-01-02")))
	return hex.EncodeToString(sum[:])
}

var _ Service = (*HMACService)(nil)
