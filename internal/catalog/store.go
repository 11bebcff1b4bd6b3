// Package catalog holds the organization → chatbot → workflow graph in
// memory and writes the whole graph to a BlobStore after every mutation.
//
// Lookups and mutations address entities by id. An unknown id is never an
// error: reads return ok=false and mutations return false without touching
// state or storage.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/storage"
)

// DefaultKey is the blob key the catalog is persisted under.
const DefaultKey = "botdocs_data"

// TimestampLayout matches JavaScript's Date.toISOString output.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const defaultSaveTimeout = 5 * time.Second

// Store is the single owner of catalog data.
type Store struct {
	mu sync.RWMutex

	orgs      *orderedmap.OrderedMap[string, *models.Organization]
	chatbots  *orderedmap.OrderedMap[string, *models.Chatbot]
	workflows *orderedmap.OrderedMap[string, *models.Workflow]

	blobs       storage.BlobStore
	key         string
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	saveTimeout time.Duration
	persistErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the blob key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSaveTimeout bounds each persistence write triggered by a mutation.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) { s.saveTimeout = d }
}

// New returns an empty Store. A nil blobs keeps the catalog in memory only.
func New(blobs storage.BlobStore, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		blobs:       blobs,
		key:         DefaultKey,
		logger:      logger,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()
	return s
}

func (s *Store) resetLocked() {
	s.orgs = orderedmap.New[string, *models.Organization]()
	s.chatbots = orderedmap.New[string, *models.Chatbot]()
	s.workflows = orderedmap.New[string, *models.Workflow]()
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(TimestampLayout)
}

// Load replaces in-memory state with the persisted blob. A missing blob
// leaves the catalog empty and is not an error. Read and decode failures
// are logged, leave the catalog empty, and are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	if s.blobs == nil {
		return nil
	}

	data, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no persisted catalog", zap.String("key", s.key))
		return nil
	}
	if err != nil {
		s.logger.Error("failed to load catalog", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("load catalog: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Error("failed to decode catalog", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("decode catalog: %w", err)
	}

	for _, o := range snap.Organizations {
		s.orgs.Set(o.ID, &o)
	}
	for _, c := range snap.Chatbots {
		c = cloneChatbot(&c)
		s.chatbots.Set(c.ID, &c)
	}
	for _, w := range snap.Workflows {
		w = cloneWorkflow(&w)
		s.workflows.Set(w.ID, &w)
	}

	s.logger.Info("catalog loaded",
		zap.Int("organizations", s.orgs.Len()),
		zap.Int("chatbots", s.chatbots.Len()),
		zap.Int("workflows", s.workflows.Len()),
	)
	return nil
}

// Save writes the current catalog to the blob store.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.saveLocked(ctx)
	s.persistErr = err
	return err
}

// PersistError returns the error from the most recent write, or nil if it
// succeeded.
func (s *Store) PersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

func (s *Store) saveLocked(ctx context.Context) error {
	if s.blobs == nil {
		return nil
	}
	data, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// persistLocked runs after every successful mutation. A failed write keeps
// the in-memory change and is reported through the log and PersistError.
func (s *Store) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.saveLocked(ctx); err != nil {
		s.logger.Error("failed to persist catalog", zap.String("key", s.key), zap.Error(err))
		s.persistErr = err
		return
	}
	s.persistErr = nil
}

// Snapshot returns a deep copy of the persisted collections.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Organizations: make([]models.Organization, 0, s.orgs.Len()),
		Chatbots:      make([]models.Chatbot, 0, s.chatbots.Len()),
		Workflows:     make([]models.Workflow, 0, s.workflows.Len()),
	}
	for p := s.orgs.Oldest(); p != nil; p = p.Next() {
		snap.Organizations = append(snap.Organizations, *p.Value)
	}
	for p := s.chatbots.Oldest(); p != nil; p = p.Next() {
		snap.Chatbots = append(snap.Chatbots, cloneChatbot(p.Value))
	}
	for p := s.workflows.Oldest(); p != nil; p = p.Next() {
		snap.Workflows = append(snap.Workflows, cloneWorkflow(p.Value))
	}
	return snap
}

// cloneChatbot copies c with fresh, non-nil embedded slices.
func cloneChatbot(c *models.Chatbot) models.Chatbot {
	out := *c
	out.Credentials = append([]models.Credential{}, c.Credentials...)
	out.Links = append([]models.Link{}, c.Links...)
	return out
}

func cloneWorkflow(w *models.Workflow) models.Workflow {
	out := *w
	out.Agents = make([]models.Agent, len(w.Agents))
	for i, a := range w.Agents {
		out.Agents[i] = cloneAgent(a)
	}
	out.Timeline = append([]models.TimelineEntry{}, w.Timeline...)
	return out
}

func cloneAgent(a models.Agent) models.Agent {
	a.Tools = append([]string{}, a.Tools...)
	return a
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
