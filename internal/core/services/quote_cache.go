package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

func quoteCacheKey(bookingID uuid.UUID) string {
	return fmt.Sprintf("quotes:%s", bookingID.String())
}

// quoteCacheField includes a fingerprint of the pricing configuration the
// quote was computed from, so a rate, add-on or tier change never hits an
// older entry.
func quoteCacheField(sitterID, serviceID uuid.UUID, sp *domain.SitterPricing) string {
	return sitterID.String() + ":" + serviceID.String() + ":" + pricingFingerprint(sp)
}

func pricingFingerprint(sp *domain.SitterPricing) string {
	addons := append([]domain.Addon(nil), sp.Addons...)
	sort.Slice(addons, func(i, j int) bool { return addons[i].Name < addons[j].Name })
	tiers := append([]domain.DiscountTier(nil), sp.Tiers...)
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].MinNights != tiers[j].MinNights {
			return tiers[i].MinNights < tiers[j].MinNights
		}
		return tiers[i].PercentBps < tiers[j].PercentBps
	})

	h := xxhash.New()
	h.WriteString("rate=" + strconv.FormatInt(sp.Service.RateCents, 10))
	for _, a := range addons {
		h.WriteString("|addon=" + a.Name + "=" + strconv.FormatInt(a.PriceCents, 10))
	}
	for _, t := range tiers {
		h.WriteString("|tier=" + strconv.Itoa(t.MinNights) + "=" + strconv.FormatInt(t.PercentBps, 10))
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func (s *BookingService) cachedQuote(ctx context.Context, bookingID uuid.UUID, field string) (*domain.CostBreakdown, bool) {
	if s.redisClient == nil {
		return nil, false
	}

	raw, err := s.redisClient.HGet(ctx, quoteCacheKey(bookingID), field).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WithField("booking_id", bookingID).WithError(err).Warn("quote cache read failed")
		}
		return nil, false
	}

	var breakdown domain.CostBreakdown
	if err := json.Unmarshal([]byte(raw), &breakdown); err != nil {
		s.log.WithField("booking_id", bookingID).WithError(err).Warn("discarding malformed cached quote")
		return nil, false
	}
	return &breakdown, true
}

func (s *BookingService) storeQuote(ctx context.Context, bookingID uuid.UUID, field string, breakdown domain.CostBreakdown) {
	if s.redisClient == nil {
		return
	}

	data, err := json.Marshal(breakdown)
	if err != nil {
		return
	}

	key := quoteCacheKey(bookingID)
	if err := s.redisClient.HSet(ctx, key, field, string(data)).Err(); err != nil {
		s.log.WithField("booking_id", bookingID).WithError(err).Warn("quote cache write failed")
		return
	}
	if err := s.redisClient.Expire(ctx, key, s.opts.QuoteTTL).Err(); err != nil {
		s.log.WithField("booking_id", bookingID).WithError(err).Warn("quote cache expire failed")
	}
}

// invalidateQuotes drops every cached preview of a booking. Called after
// each committed transition.
func (s *BookingService) invalidateQuotes(ctx context.Context, bookingID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, quoteCacheKey(bookingID)).Err(); err != nil {
		s.log.WithField("booking_id", bookingID).WithError(err).Warn("failed to invalidate cached quotes")
	}
}
