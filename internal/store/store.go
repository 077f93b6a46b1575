// Package store persists player accounts and scores as JSON on disk.
// Persistence is best-effort throughout: a failed write is logged and the
// game keeps running with in-memory state.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const usersFile = "users.json"

// GuestName is the account scores land on when nobody is logged in.
const GuestName = "guest"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBadPassword  = errors.New("wrong password")
	ErrUserExists   = errors.New("user already exists")
	ErrEmptyField   = errors.New("username and password required")
)

// userRecord is the on-disk shape of one account.
type userRecord struct {
	PasswordHash string    `json:"passwordHash"`
	HighScore    int       `json:"highScore"`
	BestWave     int       `json:"bestWave"`
	GamesPlayed  int       `json:"gamesPlayed"`
	LastPlayed   time.Time `json:"lastPlayed"`
}

// LeaderboardEntry is one row of the persisted leaderboard.
type LeaderboardEntry struct {
	Username  string `json:"username"`
	HighScore int    `json:"highScore"`
	BestWave  int    `json:"bestWave"`
	Rank      int    `json:"rank"`
}

// Store holds accounts and scores, mirrored to a JSON file.
type Store struct {
	mu      sync.RWMutex
	dir     string
	users   map[string]userRecord
	current string // Logged-in username, empty when logged out
}

// Open loads (or creates) the store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &Store{
		dir:   dir,
		users: make(map[string]userRecord),
	}

	data, err := os.ReadFile(filepath.Join(dir, usersFile))
	if err == nil {
		if err := json.Unmarshal(data, &s.users); err != nil {
			log.Printf("⚠️ Corrupt user file, starting fresh: %v", err)
			s.users = make(map[string]userRecord)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	log.Printf("💾 Score store opened at %s (%d accounts)", dir, len(s.users))
	return s, nil
}

// Register creates an account and logs it in.
func (s *Store) Register(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return ErrUserExists
	}

	s.users[username] = userRecord{PasswordHash: hashPassword(password)}
	s.current = username
	s.persistLocked()

	log.Printf("👤 Registered account: %s", username)
	return nil
}

// Login authenticates an existing account.
func (s *Store) Login(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if rec.PasswordHash != hashPassword(password) {
		return ErrBadPassword
	}

	s.current = username
	log.Printf("👤 Logged in: %s", username)
	return nil
}

// Logout clears the active session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
}

// IsLoggedIn reports whether an account session is active.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != ""
}

// CurrentUser returns the active account name, or GuestName.
func (s *Store) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return GuestName
	}
	return s.current
}

// SaveScore records a finished run against the active account (or the
// guest account) and persists. Implements game.ScoreStore.
func (s *Store) SaveScore(score, wave int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.current
	if name == "" {
		name = GuestName
	}

	rec := s.users[name]
	if score > rec.HighScore {
		rec.HighScore = score
	}
	if wave > rec.BestWave {
		rec.BestWave = wave
	}
	rec.GamesPlayed++
	rec.LastPlayed = time.Now()
	s.users[name] = rec

	return s.persistLocked()
}

// GetHighScore returns the active account's best score. Implements
// game.ScoreStore.
func (s *Store) GetHighScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := s.current
	if name == "" {
		name = GuestName
	}
	return s.users[name].HighScore
}

// Leaderboard returns the top n accounts by high score.
func (s *Store) Leaderboard(n int) []LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]LeaderboardEntry, 0, len(s.users))
	for name, rec := range s.users {
		if rec.GamesPlayed == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Username:  name,
			HighScore: rec.HighScore,
			BestWave:  rec.BestWave,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].HighScore != entries[j].HighScore {
			return entries[i].HighScore > entries[j].HighScore
		}
		return entries[i].Username < entries[j].Username
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// persistLocked writes the user table to disk. Caller holds the lock.
// A failed write is logged, not fatal.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, usersFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		log.Printf("⚠️ Score persistence failed: %v", err)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		log.Printf("⚠️ Score persistence failed: %v", err)
		return err
	}
	return nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
