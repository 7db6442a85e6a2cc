package state

import (
	"context"
	"encoding/json"
	"errors"
	gosync "sync"
	"time"

	"vita-server/client/store"
	syncclient "vita-server/client/sync"
	"vita-server/entities"
	"vita-server/logger"

	"github.com/google/uuid"
)

// Phase is the coordinator's session state.
type Phase string

const (
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseSyncing         Phase = "syncing"
	PhaseSynced          Phase = "synced"
	PhaseSyncFailed      Phase = "sync_failed"
)

var (
	ErrNotLoggedIn     = errors.New("no active session")
	ErrUnknownCategory = errors.New("unknown history category")
	ErrDuplicateImage  = errors.New("duplicate image content")
	ErrSyncFailed      = errors.New("could not reach the server")
)

// categoryHandler is one row of the tagged dispatch table: where the
// category stores locally and which XP bucket it feeds.
type categoryHandler struct {
	storeKey   string
	xpCategory string
}

var categoryHandlers = buildCategoryHandlers()

func buildCategoryHandlers() map[string]categoryHandler {
	table := make(map[string]categoryHandler, len(entities.Categories))
	for _, cat := range entities.Categories {
		table[cat] = categoryHandler{storeKey: historyKey(cat), xpCategory: cat}
	}
	return table
}

// Coordinator composes the local store, the remote sync client and the
// gamification engine behind one dependency-injected object. Local
// writes are synchronous; remote writes go through per-category FIFO
// queues, best effort, never rolled back.
type Coordinator struct {
	mu     gosync.Mutex
	store  *store.Store
	remote *syncclient.Client
	engine *Engine
	log    *logger.Logger

	phase  Phase
	user   *entities.User
	queues map[string]*writeQueue

	// OnLevelUp fires exactly once per level gained. OnSaveFailure
	// reports a failed remote write for a category; the local state has
	// already moved on by then. Both run outside the coordinator's
	// lock (OnSaveFailure on the queue's worker goroutine), so they may
	// call back into any Coordinator method.
	OnLevelUp     func(level int)
	OnSaveFailure func(category string)
}

func NewCoordinator(st *store.Store, remote *syncclient.Client, log *logger.Logger) *Coordinator {
	c := &Coordinator{
		store:  st,
		remote: remote,
		engine: NewEngine(st),
		log:    log,
		phase:  PhaseUnauthenticated,
		queues: make(map[string]*writeQueue),
	}
	return c
}

// Phase returns the current session state.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// User returns the active session user, nil when unauthenticated.
func (c *Coordinator) User() *entities.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Login starts a session. When the username differs from the last one
// cached locally, every per-category list is wiped first so nothing
// bleeds between accounts on a shared device. Guests skip syncing and
// go straight to synced, local-only.
func (c *Coordinator) Login(user *entities.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastUser string
	c.store.Get(lastUserKey, &lastUser)
	if lastUser != "" && lastUser != user.Username {
		c.wipeLocalData()
	}
	_ = c.store.Set(lastUserKey, user.Username)

	c.user = user
	if user.Role == entities.RoleGuest {
		c.phase = PhaseSynced
		return
	}
	c.phase = PhaseSyncing
}

// SyncOnce runs the once-per-login remote fetch. Success overwrites
// every local category with server data; failure leaves cached data in
// place and parks the session in sync_failed for Retry/ContinueOffline.
func (c *Coordinator) SyncOnce(ctx context.Context) error {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()
	if user == nil {
		return ErrNotLoggedIn
	}
	if user.Role == entities.RoleGuest {
		return nil
	}

	all := c.remote.FetchAll(ctx, user.Username)

	c.mu.Lock()
	defer c.mu.Unlock()
	if all == nil {
		c.phase = PhaseSyncFailed
		return ErrSyncFailed
	}
	if all.Profile != nil {
		_ = c.store.Set(profileKey, all.Profile)
	}
	for cat, entries := range all.History {
		_ = c.store.Set(historyKey(cat), entries)
	}
	_ = c.store.Set(goalsKey, all.Goals)
	_ = c.store.Set(groupsKey, all.Groups)
	c.phase = PhaseSynced
	return nil
}

// Retry re-runs the initial sync after a failure.
func (c *Coordinator) Retry(ctx context.Context) error {
	return c.SyncOnce(ctx)
}

// ContinueOffline accepts the cached local data as authoritative and
// marks the session synced without remote confirmation.
func (c *Coordinator) ContinueOffline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseSyncFailed || c.phase == PhaseSyncing {
		c.phase = PhaseSynced
	}
}

// LogEntry appends one history entry: synchronous local write, XP award,
// then best-effort remote saves through the category's FIFO queue. The
// level-up callback and the queue handoff happen after the lock is
// released, so a callback that re-enters the coordinator, or a queue
// whose buffer is full, cannot stall other callers.
func (c *Coordinator) LogEntry(category string, payload interface{}, imageHash string) (GainResult, error) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return GainResult{}, ErrNotLoggedIn
	}
	handler, ok := categoryHandlers[category]
	if !ok {
		c.mu.Unlock()
		return GainResult{}, ErrUnknownCategory
	}

	var list []entities.HistoryEntry
	c.store.Get(handler.storeKey, &list)

	if imageHash != "" {
		for _, existing := range list {
			if existing.ImageHash == imageHash {
				c.mu.Unlock()
				return GainResult{}, ErrDuplicateImage
			}
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		c.mu.Unlock()
		return GainResult{}, err
	}
	entry := entities.HistoryEntry{
		ID:        uuid.New().String(),
		Username:  c.user.Username,
		Category:  category,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   string(raw),
		ImageHash: imageHash,
	}

	// newest first, capped; oldest entries drop silently
	list = append([]entities.HistoryEntry{entry}, list...)
	if len(list) > entities.MaxHistoryPerCategory {
		list = list[:entities.MaxHistoryPerCategory]
	}
	if err := c.store.Set(handler.storeKey, list); err != nil {
		c.mu.Unlock()
		return GainResult{}, err
	}

	result := c.engine.GainXP(c.user.Username, handler.xpCategory)

	var flush []func()
	if c.remoteEnabled() {
		username := c.user.Username
		payloadCopy := json.RawMessage(raw)
		q := c.queue(category)
		flush = append(flush, func() {
			q.enqueue(func(ctx context.Context) bool {
				return c.remote.SaveHistory(ctx, username, category, payloadCopy, entry.Timestamp, imageHash)
			})
		})
		if f := c.profileFlush(); f != nil {
			flush = append(flush, f)
		}
	}
	onLevelUp := c.OnLevelUp
	c.mu.Unlock()

	if result.LeveledUp && onLevelUp != nil {
		onLevelUp(result.Level)
	}
	for _, f := range flush {
		f()
	}
	return result, nil
}

// ClearCategory wipes one local list and fires the remote clear.
func (c *Coordinator) ClearCategory(category string) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	handler, ok := categoryHandlers[category]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownCategory
	}
	if err := c.store.Set(handler.storeKey, []entities.HistoryEntry{}); err != nil {
		c.mu.Unlock()
		return err
	}
	var flush func()
	if c.remoteEnabled() {
		username := c.user.Username
		q := c.queue(category)
		flush = func() {
			q.enqueue(func(ctx context.Context) bool {
				return c.remote.Clear(ctx, category, username)
			})
		}
	}
	c.mu.Unlock()
	if flush != nil {
		flush()
	}
	return nil
}

// SaveProfile overwrites the local profile and mirrors it remotely.
func (c *Coordinator) SaveProfile(profile *entities.UserProfile) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	profile.Username = c.user.Username
	if err := c.store.Set(profileKey, profile); err != nil {
		c.mu.Unlock()
		return err
	}
	var flush func()
	if c.remoteEnabled() {
		flush = c.profileFlush()
	}
	c.mu.Unlock()
	if flush != nil {
		flush()
	}
	return nil
}

// UpsertGoal writes a goal into the local list by id and mirrors it.
func (c *Coordinator) UpsertGoal(goal *entities.Goal) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.Username = c.user.Username

	var goals []entities.Goal
	c.store.Get(goalsKey, &goals)
	replaced := false
	for i := range goals {
		if goals[i].ID == goal.ID {
			goals[i] = *goal
			replaced = true
			break
		}
	}
	if !replaced {
		goals = append(goals, *goal)
	}
	if err := c.store.Set(goalsKey, goals); err != nil {
		c.mu.Unlock()
		return err
	}
	var flush func()
	if c.remoteEnabled() {
		saved := *goal
		q := c.queue("goals")
		flush = func() {
			q.enqueue(func(ctx context.Context) bool {
				return c.remote.SaveGoal(ctx, &saved)
			})
		}
	}
	c.mu.Unlock()
	if flush != nil {
		flush()
	}
	return nil
}

// AllowAIUse gates one AI call per the local-date usage counter.
func (c *Coordinator) AllowAIUse(kind string, maxPerDay int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return false
	}
	return c.engine.AllowDailyUse(c.user.Username, kind, maxPerDay)
}

// Profile returns the locally cached profile.
func (c *Coordinator) Profile() *entities.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	var profile entities.UserProfile
	if !c.store.Get(profileKey, &profile) {
		return nil
	}
	return &profile
}

// History returns the locally cached list for one category, newest first.
func (c *Coordinator) History(category string) []entities.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	var list []entities.HistoryEntry
	c.store.Get(historyKey(category), &list)
	return list
}

// Goals returns the locally cached goal list.
func (c *Coordinator) Goals() []entities.Goal {
	c.mu.Lock()
	defer c.mu.Unlock()
	var goals []entities.Goal
	c.store.Get(goalsKey, &goals)
	return goals
}

// Close drains every write queue and stops their workers.
func (c *Coordinator) Close() {
	c.mu.Lock()
	queues := make([]*writeQueue, 0, len(c.queues))
	for _, q := range c.queues {
		queues = append(queues, q)
	}
	c.queues = make(map[string]*writeQueue)
	c.mu.Unlock()
	for _, q := range queues {
		q.close()
	}
}

// remoteEnabled is false for guests, whose state never leaves the device.
func (c *Coordinator) remoteEnabled() bool {
	return c.user != nil && c.user.Role != entities.RoleGuest
}

// queue returns the FIFO write queue for a category, creating it lazily.
// Callers hold c.mu.
func (c *Coordinator) queue(category string) *writeQueue {
	if q, ok := c.queues[category]; ok {
		return q
	}
	q := newWriteQueue(category, func(cat string) {
		c.log.Warn("remote save failed", "category", cat)
		if c.OnSaveFailure != nil {
			c.OnSaveFailure(cat)
		}
	})
	c.queues[category] = q
	return q
}

// profileFlush snapshots the current local profile and returns a
// function that enqueues its remote save, or nil when no profile is
// cached. Callers hold c.mu; the returned function must run after the
// lock is released.
func (c *Coordinator) profileFlush() func() {
	var profile entities.UserProfile
	if !c.store.Get(profileKey, &profile) {
		return nil
	}
	saved := profile
	q := c.queue("profile")
	return func() {
		q.enqueue(func(ctx context.Context) bool {
			return c.remote.SaveProfile(ctx, &saved)
		})
	}
}

// wipeLocalData clears every per-user key. Callers hold c.mu.
func (c *Coordinator) wipeLocalData() {
	for _, cat := range entities.Categories {
		_ = c.store.Delete(historyKey(cat))
	}
	_ = c.store.Delete(profileKey)
	_ = c.store.Delete(goalsKey)
	_ = c.store.Delete(groupsKey)
	_ = c.store.DeletePrefix("xp_awards:")
	_ = c.store.DeletePrefix("usage:")
}
