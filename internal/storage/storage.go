package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/keshon/datastore"
)

// ErrNotFound is returned when a record has never been saved.
var ErrNotFound = errors.New("record not found")

// Guild is the persisted configuration of one guild.
type Guild struct {
	ID              snowflake.ID `json:"id"`
	StreamChannelID snowflake.ID `json:"stream_channel_id,omitempty"`

	// DefaultVoiceNames maps a voice channel id to the name it resets to.
	DefaultVoiceNames map[string]string `json:"default_voice_names,omitempty"`
}

// DefaultVoiceName returns the stored default name of a voice channel.
func (g *Guild) DefaultVoiceName(channelID snowflake.ID) (string, bool) {
	name, ok := g.DefaultVoiceNames[channelID.String()]
	return name, ok
}

// SetDefaultVoiceName stores the default name of a voice channel. An empty
// name removes it.
func (g *Guild) SetDefaultVoiceName(channelID snowflake.ID, name string) {
	if name == "" {
		delete(g.DefaultVoiceNames, channelID.String())
		return
	}
	if g.DefaultVoiceNames == nil {
		g.DefaultVoiceNames = make(map[string]string)
	}
	g.DefaultVoiceNames[channelID.String()] = name
}

// User is the persisted timezone information of one user.
type User struct {
	ID            snowflake.ID `json:"id"`
	OffsetMinutes int          `json:"offset_minutes"`

	// DSTRegion is the stored daylight saving region code; 0 means none.
	DSTRegion int `json:"dst_region"`
}

// Store persists guild and user records in a JSON key-value file.
type Store struct {
	mu sync.Mutex
	ds *datastore.DataStore

	// cancel stops the background save loop, which Close waits on.
	cancel context.CancelFunc
}

// Open opens or creates the store at path. The store saves itself
// periodically until ctx is cancelled or Close is called.
func Open(ctx context.Context, path string) (*Store, error) {
	ctx, cancel := context.WithCancel(ctx)

	ds, err := datastore.New(ctx, path, datastore.WithLogger(slog.Default()))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open datastore %s: %w", path, err)
	}
	return &Store{ds: ds, cancel: cancel}, nil
}

// Close stops the save loop and flushes the store to disk.
func (s *Store) Close() error {
	s.cancel()
	return s.ds.Close()
}

// Guild returns the configuration of a guild. A guild that has never been
// saved yields an empty record.
func (s *Store) Guild(id snowflake.ID) (*Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &Guild{ID: id}
	if err := s.get(guildKey(id), g); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return g, nil
}

// SaveGuild replaces the stored configuration of a guild.
func (s *Store) SaveGuild(g *Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(guildKey(g.ID), g)
}

// UpdateGuild applies fn to the stored guild record and saves the result.
func (s *Store) UpdateGuild(id snowflake.ID, fn func(g *Guild)) (*Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &Guild{ID: id}
	if err := s.get(guildKey(id), g); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	fn(g)
	if err := s.put(guildKey(id), g); err != nil {
		return nil, err
	}
	return g, nil
}

// User returns the timezone information of a user, or ErrNotFound.
func (s *Store) User(id snowflake.ID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{}
	if err := s.get(userKey(id), u); err != nil {
		return nil, err
	}
	return u, nil
}

// SaveUser replaces the stored timezone information of a user.
func (s *Store) SaveUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(userKey(u.ID), u)
}

// DeleteUser forgets a user. It reports whether a record existed.
func (s *Store) DeleteUser(id snowflake.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey(id)
	if err := s.get(key, &User{}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.ds.Delete(key); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) get(key string, out any) error {
	found, err := s.ds.Get(key, out)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Store) put(key string, value any) error {
	if err := s.ds.Set(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func guildKey(id snowflake.ID) string { return "guild:" + id.String() }
func userKey(id snowflake.ID) string  { return "user:" + id.String() }
