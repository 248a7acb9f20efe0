package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/op/go-logging"

	"github.com/dwelter/storefront-cli/internal/domain"
	"github.com/dwelter/storefront-cli/internal/gateway/docstore"
	"github.com/dwelter/storefront-cli/internal/gateway/mediastore"
)

var log = logging.MustGetLogger("store")

const (
	infoCollection     = "StoreInformations"
	statusCollection   = "Status"
	serviceCollection  = "service"
	locationCollection = "StoreLocation"
	logoObject         = "Logos/store.jpg"

	disabledStatus = "Store Status is Currently disabled"
)

// defaultLocation is used when the location collection holds no coordinates.
var defaultLocation = domain.StoreLocation{Latitude: 52.40375, Longitude: 9.66171}

// Service reads the passive startup records: store information, status,
// service hours, location and the logo. The records are consumed once and
// passed through, never mutated.
type Service struct {
	docs  docstore.API
	media mediastore.API
}

// NewService creates a store info service.
func NewService(docs docstore.API, media mediastore.API) *Service {
	return &Service{docs: docs, media: media}
}

// Overview bundles all startup records for display.
type Overview struct {
	Info     domain.StoreInfo       `json:"info" yaml:"info"`
	Status   string                 `json:"status" yaml:"status"`
	Schedule domain.ServiceSchedule `json:"schedule" yaml:"schedule"`
	Location domain.StoreLocation   `json:"location" yaml:"location"`
	LogoURL  string                 `json:"logo_url,omitempty" yaml:"logo_url,omitempty"`
}

// Info fetches the store information record.
func (s *Service) Info(ctx context.Context) (domain.StoreInfo, error) {
	var info domain.StoreInfo
	if err := s.docs.First(ctx, infoCollection, &info); err != nil {
		return domain.StoreInfo{}, fmt.Errorf("fetch store information: %w", err)
	}
	return info, nil
}

type statusDocument struct {
	Avaible string `json:"Avaible"`
}

// Status fetches the availability banner. An empty collection renders the
// disabled message instead of failing.
func (s *Service) Status(ctx context.Context) (string, error) {
	var doc statusDocument
	if err := s.docs.First(ctx, statusCollection, &doc); err != nil {
		if errors.Is(err, docstore.ErrEmptyCollection) {
			return disabledStatus, nil
		}
		return "", fmt.Errorf("fetch status: %w", err)
	}
	return doc.Avaible, nil
}

// Schedule fetches the service hours record.
func (s *Service) Schedule(ctx context.Context) (domain.ServiceSchedule, error) {
	schedule := domain.ServiceSchedule{}
	if err := s.docs.First(ctx, serviceCollection, &schedule); err != nil {
		return nil, fmt.Errorf("fetch service hours: %w", err)
	}
	return schedule, nil
}

// Location fetches the store coordinates, falling back to the default
// location when the record is absent or empty.
func (s *Service) Location(ctx context.Context) (domain.StoreLocation, error) {
	var location domain.StoreLocation
	if err := s.docs.First(ctx, locationCollection, &location); err != nil {
		if errors.Is(err, docstore.ErrEmptyCollection) {
			return defaultLocation, nil
		}
		return domain.StoreLocation{}, fmt.Errorf("fetch store location: %w", err)
	}
	if location.IsZero() {
		return defaultLocation, nil
	}
	return location, nil
}

// LogoURL resolves the store logo, returning the empty string when missing.
func (s *Service) LogoURL(ctx context.Context) (string, error) {
	ref, err := s.media.Stat(ctx, logoObject)
	if err != nil {
		if errors.Is(err, mediastore.ErrObjectNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolve logo: %w", err)
	}
	return ref.URL, nil
}

// Fetch assembles the overview. Store information is required; the remaining
// records degrade to defaults and a warning, matching how the storefront
// tolerates partially configured backends.
func (s *Service) Fetch(ctx context.Context) (Overview, []string, error) {
	info, err := s.Info(ctx)
	if err != nil {
		return Overview{}, nil, err
	}

	warnings := make([]string, 0)
	overview := Overview{Info: info, Location: defaultLocation}

	if status, err := s.Status(ctx); err != nil {
		warnings = append(warnings, "status unavailable: "+err.Error())
	} else {
		overview.Status = status
	}
	if schedule, err := s.Schedule(ctx); err != nil {
		warnings = append(warnings, "service hours unavailable: "+err.Error())
	} else {
		overview.Schedule = schedule
	}
	if location, err := s.Location(ctx); err != nil {
		warnings = append(warnings, "location unavailable: "+err.Error())
	} else {
		overview.Location = location
	}
	if logoURL, err := s.LogoURL(ctx); err != nil {
		warnings = append(warnings, "logo unavailable: "+err.Error())
	} else {
		overview.LogoURL = logoURL
	}
	for _, warning := range warnings {
		log.Warningf("%s", warning)
	}
	return overview, warnings, nil
}
