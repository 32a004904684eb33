package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable marks read failures the resilience layer may
	// absorb with cached or synthesized data: store timeouts and missing
	// schema, as classified by the campaign store gateway.
	ErrSourceUnavailable = errors.New("campaign source unavailable")

	// ErrNoFallbackAvailable escalates a source failure for which neither a
	// cached snapshot nor a placeholder exists.
	ErrNoFallbackAvailable = errors.New("campaign source unavailable and no fallback data exists")

	// ErrMutationDisabledOnFallbackData refuses any transition or edit
	// decision attempted against a record sourced from a stale or mock
	// snapshot, before the lifecycle engines are ever reached.
	ErrMutationDisabledOnFallbackData = errors.New("mutations are disabled while fallback data is shown; refresh from the live store first")

	ErrUnknownCollection = errors.New("unknown console collection")

	// ErrCampaignNotFound is a definitive miss from the live store. It is
	// not a fallback trigger: the record genuinely does not exist.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrDetailNotCached is the detail-read case of ErrNoFallbackAvailable:
	// details are never synthesized, so a cache miss has nothing to serve.
	ErrDetailNotCached = fmt.Errorf("%w: campaign detail not cached", ErrNoFallbackAvailable)
)
