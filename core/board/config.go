package board

import (
	"errors"
	"fmt"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

// ErrInvalidConfig is returned by ParseConfig for unknown filter or sort
// values.
var ErrInvalidConfig = errors.New("invalid board config")

// StatusFilter is a task status or FilterAll.
type StatusFilter string

// FilterAll matches every status.
const FilterAll StatusFilter = "all"

// SortBy names a task ordering.
type SortBy string

const (
	SortNewest SortBy = "newest"
	SortOldest SortBy = "oldest"
	SortAZ     SortBy = "a-z"
	SortZA     SortBy = "z-a"
)

// Config is the client held filter and sort selection. It is never
// persisted.
type Config struct {
	Search string
	Status StatusFilter
	SortBy SortBy
}

// DefaultConfig is the reset state: no search, all statuses, newest first.
func DefaultConfig() Config {
	return Config{Status: FilterAll, SortBy: SortNewest}
}

// ParseConfig validates raw values. Empty status and sortBy fall back to the
// defaults.
func ParseConfig(search, status, sortBy string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Search = search

	switch {
	case status == "" || StatusFilter(status) == FilterAll:
	case tasksrepo.Status(status).Valid():
		cfg.Status = StatusFilter(status)
	default:
		return Config{}, fmt.Errorf("%w: status %q", ErrInvalidConfig, status)
	}

	switch SortBy(sortBy) {
	case "":
	case SortNewest, SortOldest, SortAZ, SortZA:
		cfg.SortBy = SortBy(sortBy)
	default:
		return Config{}, fmt.Errorf("%w: sortBy %q", ErrInvalidConfig, sortBy)
	}

	return cfg, nil
}
