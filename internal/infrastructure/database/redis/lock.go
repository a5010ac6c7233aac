package redis

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// SeedLockName is the mutex held while fixtures are loaded.
const SeedLockName = "seed"

var (
	ErrLockNotAcquired = errors.New(errors.ErrCodeConflict, "failed to acquire lock")
	ErrLockNotHeld     = errors.New(errors.ErrCodeConflict, "lock not held by this owner")
)

// LockOption tunes a Mutex.
type LockOption func(*lockConfig)

// WithLockTTL sets the key expiry.  Defaults to 30s.
func WithLockTTL(ttl time.Duration) LockOption {
	return func(c *lockConfig) { c.ttl = ttl }
}

// WithRetryDelay sets the pause between SETNX attempts.
func WithRetryDelay(delay time.Duration) LockOption {
	return func(c *lockConfig) { c.retryDelay = delay }
}

// WithRetryCount caps SETNX attempts in Lock.  Values below 1 mean one
// attempt.
func WithRetryCount(count int) LockOption {
	return func(c *lockConfig) { c.retryCount = count }
}

// WithWatchdog keeps extending the key while the lock is held.
func WithWatchdog(enabled bool) LockOption {
	return func(c *lockConfig) { c.watchdogEnabled = enabled }
}

type lockConfig struct {
	ttl              time.Duration
	retryDelay       time.Duration
	retryCount       int
	watchdogEnabled  bool
	watchdogInterval time.Duration
}

// Mutex is a single-owner lock on one Redis key.  The owner token is random
// per Mutex, so only the instance that acquired the key can release it.
type Mutex struct {
	client *Client
	key    string
	value  string
	config lockConfig
	logger logging.Logger

	mu             sync.Mutex
	watchdogCancel context.CancelFunc
	watchdogDone   chan struct{}
}

var mutexUnlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

var mutexExtendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// NewMutex returns an unlocked Mutex named name.
func NewMutex(client *Client, name string, log logging.Logger, opts ...LockOption) *Mutex {
	if log == nil {
		log = logging.NewNopLogger()
	}
	cfg := lockConfig{
		ttl:        30 * time.Second,
		retryDelay: 100 * time.Millisecond,
		retryCount: 30,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.retryCount < 1 {
		cfg.retryCount = 1
	}
	cfg.watchdogInterval = cfg.ttl / 3

	return &Mutex{
		client: client,
		key:    buildLockKey("mutex", name),
		value:  uuid.NewString(),
		config: cfg,
		logger: log.With(logging.String("lock", name)),
	}
}

// Lock retries SETNX until it succeeds, the attempts run out or ctx ends.
func (m *Mutex) Lock(ctx context.Context) error {
	for i := 0; i < m.config.retryCount; i++ {
		ok, err := m.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if i == m.config.retryCount-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.retryDelay):
		}
	}
	return ErrLockNotAcquired
}

// TryLock makes one SETNX attempt.
func (m *Mutex) TryLock(ctx context.Context) (bool, error) {
	ok, err := m.client.GetUnderlyingClient().SetNX(ctx, m.key, m.value, m.config.ttl).Result()
	if err != nil && !stderrors.Is(err, redis.Nil) {
		return false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to set lock")
	}
	if ok && m.config.watchdogEnabled {
		m.startWatchdog()
	}
	return ok, nil
}

// Unlock releases the key if this Mutex still owns it.
func (m *Mutex) Unlock(ctx context.Context) error {
	m.stopWatchdog()
	res, err := mutexUnlockScript.Run(ctx, m.client.GetUnderlyingClient(), []string{m.key}, m.value).Int64()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to release lock")
	}
	if res == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Extend resets the expiry to ttl if this Mutex still owns the key.
func (m *Mutex) Extend(ctx context.Context, ttl time.Duration) (bool, error) {
	res, err := mutexExtendScript.Run(ctx, m.client.GetUnderlyingClient(), []string{m.key}, m.value, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// TTL reports the remaining expiry of the key.
func (m *Mutex) TTL(ctx context.Context) (time.Duration, error) {
	return m.client.GetUnderlyingClient().PTTL(ctx, m.key).Result()
}

func (m *Mutex) startWatchdog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watchdogCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.watchdogCancel = cancel
	m.watchdogDone = make(chan struct{})
	go runWatchdog(ctx, m.Extend, m.config.watchdogInterval, m.config.ttl, m.logger, m.watchdogDone)
}

func (m *Mutex) stopWatchdog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watchdogCancel != nil {
		m.watchdogCancel()
		<-m.watchdogDone
		m.watchdogCancel = nil
	}
}

func buildLockKey(lockType, name string) string {
	return "infringescope:lock:" + lockType + ":" + name
}

func runWatchdog(ctx context.Context, extendFn func(context.Context, time.Duration) (bool, error), interval, ttl time.Duration, log logging.Logger, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := extendFn(ctx, ttl)
			if err != nil {
				if ctx.Err() == nil {
					log.Error("Watchdog failed to extend lock", logging.Err(err))
				}
				return
			}
			if !ok {
				log.Warn("Watchdog lost lock")
				return
			}
		}
	}
}

//Personal.AI order the ending
