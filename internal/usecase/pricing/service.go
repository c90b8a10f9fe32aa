package pricing

import (
	"context"
	"math"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"numguru/internal/config"
	"numguru/internal/domain/payment"
	"numguru/internal/pkg/logger"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "pricing:currency:"

// CountryResolver maps a client IP to an ISO 3166 alpha-2 country code.
type CountryResolver interface {
	CountryCode(ctx context.Context, ip string) (string, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Quote struct {
	Country         string  `json:"country,omitempty"`
	Currency        string  `json:"currency"`
	Amount          float64 `json:"amount"`
	AmountMinor     int64   `json:"amount_minor"`
	Symbol          string  `json:"symbol"`
	Display         string  `json:"display"`
	OriginalAmount  float64 `json:"original_amount"`
	OriginalDisplay string  `json:"original_display"`
}

type cachedCountry struct {
	Country string `json:"country"`
}

type Service struct {
	prices   config.PricingConfig
	resolver CountryResolver
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(prices config.PricingConfig, resolver CountryResolver, cache Cache, cacheTTL time.Duration, l *zap.Logger) *Service {
	return &Service{
		prices:   prices,
		resolver: resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.OrNop(l),
	}
}

// Quote prices the report for the caller at ip. India pays in rupees and
// everyone else in dollars. Lookup failures of any kind fall back to rupees.
func (s *Service) Quote(ctx context.Context, ip string) Quote {
	country := s.country(ctx, strings.TrimSpace(ip))
	if country == "" || country == "IN" {
		q := s.quote(payment.CurrencyINR, s.prices.INRAmount, s.prices.INROriginalAmount)
		q.Country = country
		return q
	}
	q := s.quote(payment.CurrencyUSD, s.prices.USDAmount, s.prices.USDOriginalAmount)
	q.Country = country
	return q
}

func (s *Service) country(ctx context.Context, ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !publicAddr(addr) || s.resolver == nil {
		return ""
	}
	key := cacheKeyPrefix + addr.String()

	if s.cache != nil {
		var cached cachedCountry
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Debug("pricing cache read failed", zap.Error(err))
		}
		if found && cached.Country != "" {
			return cached.Country
		}
	}

	country, err := s.resolver.CountryCode(ctx, addr.String())
	if err != nil {
		s.logger.Warn("country lookup failed", zap.String("ip", addr.String()), zap.Error(err))
		return ""
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, cachedCountry{Country: country}, s.cacheTTL); err != nil {
			s.logger.Debug("pricing cache write failed", zap.Error(err))
		}
	}
	return country
}

func (s *Service) quote(currency string, amount, original float64) Quote {
	symbol := Symbol(currency)
	return Quote{
		Currency:        currency,
		Amount:          amount,
		AmountMinor:     int64(math.Round(amount * 100)),
		Symbol:          symbol,
		Display:         symbol + formatAmount(amount),
		OriginalAmount:  original,
		OriginalDisplay: symbol + formatAmount(original),
	}
}

func Symbol(currency string) string {
	switch currency {
	case payment.CurrencyUSD:
		return "$"
	default:
		return "₹"
	}
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func publicAddr(a netip.Addr) bool {
	return a.IsValid() &&
		!a.IsLoopback() &&
		!a.IsPrivate() &&
		!a.IsUnspecified() &&
		!a.IsLinkLocalUnicast() &&
		!a.IsMulticast()
}
