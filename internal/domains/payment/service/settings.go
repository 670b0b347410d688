package service

import (
	"time"

	"tourismrelay/config"
	"tourismrelay/internal/domains/payment/model"
	"tourismrelay/shared/money"
	gRepository "tourismrelay/shared/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	defaultValidationDeadline = 7 * time.Second
	// providerValidationLimit is how long the provider waits for a validation answer.
	providerValidationLimit = 8 * time.Second
)

var defaultTolerance = decimal.NewFromInt(1)

type Settings struct {
	Tolerance          decimal.Decimal
	FailedPushPolicy   model.FailedPushPolicy
	PushAmountUnit     money.Unit
	StoreTimeout       time.Duration
	ValidationDeadline time.Duration
}

// withDefaults fills zero values and keeps the validation deadline under the provider limit.
func (s Settings) withDefaults() Settings {
	if s.Tolerance.Sign() <= 0 {
		s.Tolerance = defaultTolerance
	}

	if s.FailedPushPolicy == "" {
		s.FailedPushPolicy = model.FailedPushHold
	}

	if s.PushAmountUnit == "" {
		s.PushAmountUnit = money.UnitMinor
	}

	if s.StoreTimeout <= 0 {
		s.StoreTimeout = gRepository.DefaultCallTimeout
	}

	if s.ValidationDeadline <= 0 || s.ValidationDeadline >= providerValidationLimit {
		s.ValidationDeadline = defaultValidationDeadline
	}

	return s
}

func SettingsFromConfig(cfg *config.Config) Settings {
	rc := cfg.Reconciliation

	tolerance := defaultTolerance
	if rc.AmountTolerance != "" {
		parsed, err := money.Parse(rc.AmountTolerance)
		if err != nil {
			log.Warn().Err(err).Msg("invalid amount tolerance, using default")
		} else {
			tolerance = parsed
		}
	}

	var unit money.Unit
	if rc.PushAmountUnit != "" {
		unit = money.ParseUnit(rc.PushAmountUnit)
	}

	return Settings{
		Tolerance:          tolerance,
		FailedPushPolicy:   model.ParseFailedPushPolicy(rc.FailedPushPolicy),
		PushAmountUnit:     unit,
		StoreTimeout:       gRepository.CallTimeout(rc.StoreTimeoutSeconds),
		ValidationDeadline: time.Duration(rc.ValidationDeadlineMillis) * time.Millisecond,
	}.withDefaults()
}
