package application

import (
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/emotebot/internal/modules/timezone/domain"
	"github.com/sglre6355/emotebot/internal/storage"
)

// UserStore persists user timezones. *storage.Store satisfies it.
type UserStore interface {
	User(id snowflake.ID) (*storage.User, error)
	SaveUser(u *storage.User) error
	DeleteUser(id snowflake.ID) (bool, error)
}

// ShowOutput contains the result of the Show use case.
type ShowOutput struct {
	UserID snowflake.ID
	Zone   domain.Zone
	Local  time.Time
	InDST  bool
}

// SetupInput contains the input for the Setup use case.
type SetupInput struct {
	UserID snowflake.ID
	Offset string
	Region string // empty means no daylight saving
}

// TimezoneService manages registered user timezones.
type TimezoneService struct {
	store UserStore
	now   func() time.Time
}

// NewTimezoneService creates a new TimezoneService. now defaults to time.Now.
func NewTimezoneService(store UserStore, now func() time.Time) *TimezoneService {
	if now == nil {
		now = time.Now
	}
	return &TimezoneService{store: store, now: now}
}

// Show returns the current local time of a user.
func (s *TimezoneService) Show(userID snowflake.ID) (*ShowOutput, error) {
	u, err := s.store.User(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoTimezone
	}
	if err != nil {
		return nil, err
	}

	zone, err := domain.NewZone(u.OffsetMinutes, domain.Region(u.DSTRegion))
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &ShowOutput{
		UserID: userID,
		Zone:   zone,
		Local:  zone.Local(now),
		InDST:  zone.InDST(now),
	}, nil
}

// Setup registers or replaces a user's timezone.
func (s *TimezoneService) Setup(input SetupInput) (domain.Zone, error) {
	offset, err := domain.ParseOffset(input.Offset)
	if err != nil {
		return domain.Zone{}, err
	}

	region := domain.RegionNone
	if input.Region != "" {
		if region, err = domain.ParseRegion(input.Region); err != nil {
			return domain.Zone{}, err
		}
	}

	zone, err := domain.NewZone(offset, region)
	if err != nil {
		return domain.Zone{}, err
	}

	if err := s.store.SaveUser(&storage.User{
		ID:            input.UserID,
		OffsetMinutes: zone.OffsetMinutes,
		DSTRegion:     int(zone.Region),
	}); err != nil {
		return domain.Zone{}, err
	}

	return zone, nil
}

// Delete removes a user's timezone.
func (s *TimezoneService) Delete(userID snowflake.ID) error {
	existed, err := s.store.DeleteUser(userID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNoTimezone
	}
	return nil
}

// UTC returns the current time in UTC.
func (s *TimezoneService) UTC() time.Time {
	return s.now().UTC()
}
