package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownZone is returned when a zone key is not present in the zone registry.
	ErrUnknownZone = zerr.New("unknown zone")

	// ErrZoneAlreadyRegistered is returned when a zone key is registered twice.
	ErrZoneAlreadyRegistered = zerr.New("zone already registered")

	// ErrInvalidZoneKey is returned when a zone key is empty or contains invalid characters.
	ErrInvalidZoneKey = zerr.New("zone key can only contain alphanumeric characters, hyphens, dots and underscores")

	// ErrNilLoader is returned when a zone is registered without a loader.
	ErrNilLoader = zerr.New("zone loader is nil")

	// ErrLoaderPanicked is returned when a zone loader panics instead of returning.
	ErrLoaderPanicked = zerr.New("loader panicked")

	// ErrZoneLoadFailed is returned when a zone loader fails to produce its bundle.
	ErrZoneLoadFailed = zerr.New("failed to load zone bundle")

	// ErrBundleNotFound is returned when a bundle file does not exist.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrBundleReadFailed is returned when a bundle file cannot be read.
	ErrBundleReadFailed = zerr.New("failed to read bundle")

	// ErrConfigNotFound is returned when no manifest can be found.
	ErrConfigNotFound = zerr.New("could not find waypoint manifest")

	// ErrConfigReadFailed is returned when the manifest cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest")

	// ErrConfigParseFailed is returned when the manifest cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest")

	// ErrConfigEnvFailed is returned when environment overrides cannot be parsed.
	ErrConfigEnvFailed = zerr.New("failed to parse environment overrides")

	// ErrMissingBundlePath is returned when a zone in the manifest has no bundle path.
	ErrMissingBundlePath = zerr.New("zone has no bundle path")

	// ErrInvalidQuestID is returned when a quest id is empty or contains path separators.
	ErrInvalidQuestID = zerr.New("invalid quest id")

	// ErrQuestNotFound is returned when a quest definition does not exist.
	ErrQuestNotFound = zerr.New("quest not found")

	// ErrQuestReadFailed is returned when a quest document cannot be read.
	ErrQuestReadFailed = zerr.New("failed to read quest document")

	// ErrQuestParseFailed is returned when a quest document cannot be parsed.
	ErrQuestParseFailed = zerr.New("failed to parse quest document")

	// ErrQuestFetchFailed is returned when fetching a quest context fails.
	ErrQuestFetchFailed = zerr.New("failed to fetch quest context")

	// ErrNoZonesSpecified is returned when no zones are specified for the visit command.
	ErrNoZonesSpecified = zerr.New("no zones specified")

	// ErrNoQuestsSpecified is returned when no quests are specified for the quest command.
	ErrNoQuestsSpecified = zerr.New("no quests specified")

	// ErrVisitFailed is returned when at least one visited zone failed to load.
	ErrVisitFailed = zerr.New("zone visit failed")
)
