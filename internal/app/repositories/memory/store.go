// Package memory provides a process-local UserStore with the same uniqueness
// constraints as the PostgreSQL schema. It backs the "memory" database driver
// and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
)

// Store keeps accounts in maps guarded by a single lock
type Store struct {
	mu          sync.RWMutex
	nextID      int64
	accounts    map[int64]*models.Account
	byEmail     map[string]int64
	byStudentID map[string]int64
	now         func() time.Time
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		accounts:    make(map[int64]*models.Account),
		byEmail:     make(map[string]int64),
		byStudentID: make(map[string]int64),
		now:         time.Now,
	}
}

// FindByEmail retrieves an account by exact email
func (s *Store) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return s.accounts[id].Clone(), nil
}

// FindStudentByStudentID retrieves a student by student ID
func (s *Store) FindStudentByStudentID(_ context.Context, studentID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byStudentID[studentID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return s.accounts[id].Clone(), nil
}

// FindByID retrieves an account by ID
func (s *Store) FindByID(_ context.Context, id int64) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return account.Clone(), nil
}

// GetPasswordHash retrieves the stored hash for email
func (s *Store) GetPasswordHash(_ context.Context, email string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return "", apperrors.ErrAccountNotFound
	}
	return s.accounts[id].PasswordHash, nil
}

// InsertStudent stores a student account
func (s *Store) InsertStudent(_ context.Context, account *models.Account) error {
	account.Kind = models.KindStudent
	if account.Student == nil {
		return apperrors.NewBadRequestError("student account has no student details")
	}
	return s.insert(account)
}

// InsertAdmin stores an administrator account
func (s *Store) InsertAdmin(_ context.Context, account *models.Account) error {
	account.Kind = models.KindAdmin
	account.Student = nil
	return s.insert(account)
}

func (s *Store) insert(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkConstraints(account, 0); err != nil {
		return err
	}

	s.nextID++
	now := s.now()
	account.ID = s.nextID
	account.CreatedAt = now
	account.UpdatedAt = now

	s.put(account.Clone())
	return nil
}

// Update replaces the stored profile of the account with the same ID. The
// password hash is left unchanged.
func (s *Store) Update(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[account.ID]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	if err := s.checkConstraints(account, account.ID); err != nil {
		return err
	}

	s.remove(existing)
	account.PasswordHash = existing.PasswordHash
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = s.now()
	s.put(account.Clone())
	return nil
}

// UpdatePasswordHash replaces the stored hash for the account with id
func (s *Store) UpdatePasswordHash(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = s.now()
	return nil
}

// Delete removes an account and its uniqueness reservations
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	s.remove(existing)
	return nil
}

// List returns accounts matching filter ordered by ID
func (s *Store) List(_ context.Context, filter models.AccountFilter) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	result := make([]*models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		if filter.Kind != "" && account.Kind != filter.Kind {
			continue
		}
		if filter.Course != "" && (account.Student == nil || account.Student.Course != filter.Course) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(account.Name), name) {
			continue
		}
		result = append(result, account.Clone())
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*models.Account{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// checkConstraints mirrors the unique indexes; selfID is ignored as an owner.
// Callers hold the write lock.
func (s *Store) checkConstraints(account *models.Account, selfID int64) error {
	if owner, ok := s.byEmail[account.Email]; ok && owner != selfID {
		return apperrors.ErrEmailAlreadyExists
	}
	if account.Student != nil {
		if owner, ok := s.byStudentID[account.Student.StudentID]; ok && owner != selfID {
			return apperrors.ErrStudentIDAlreadyExists
		}
	}
	return nil
}

func (s *Store) put(account *models.Account) {
	s.accounts[account.ID] = account
	s.byEmail[account.Email] = account.ID
	if account.Student != nil {
		s.byStudentID[account.Student.StudentID] = account.ID
	}
}

func (s *Store) remove(account *models.Account) {
	delete(s.accounts, account.ID)
	delete(s.byEmail, account.Email)
	if account.Student != nil {
		delete(s.byStudentID, account.Student.StudentID)
	}
}
