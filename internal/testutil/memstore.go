package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/domain/user"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// Operation names accepted by MemStore.FailOn.
const (
	OpCompanyInsert  = "companies.insert"
	OpPatentInsert   = "patents.insert"
	OpAnalysisInsert = "analyses.insert"
	OpUserInsert     = "users.insert"
	OpMarkerPut      = "markers.put"
	OpBegin          = "tx.begin"
)

type memData struct {
	companies []*company.Company
	patents   []*patent.Patent
	analyses  []*infringement.Analysis
	users     []*user.User
	items     []*user.Item
	markers   map[seed.Source]*seed.Marker
}

func (d *memData) clone() *memData {
	out := &memData{
		companies: append([]*company.Company(nil), d.companies...),
		patents:   append([]*patent.Patent(nil), d.patents...),
		analyses:  append([]*infringement.Analysis(nil), d.analyses...),
		users:     append([]*user.User(nil), d.users...),
		items:     append([]*user.Item(nil), d.items...),
		markers:   make(map[seed.Source]*seed.Marker, len(d.markers)),
	}
	for k, v := range d.markers {
		out.markers[k] = v
	}
	return out
}

// MemStore is an in-memory store.Store.  WithTx works on a copy of the data
// and publishes it only when fn succeeds.
type MemStore struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	data  *memData
	fails map[string]error

	// Now stamps created_at columns.
	Now func() time.Time
}

var _ store.Store = (*MemStore)(nil)

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		data:  &memData{markers: map[seed.Source]*seed.Marker{}},
		fails: map[string]error{},
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// FailOn makes every later op return err.  A nil err clears the failure.
func (s *MemStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fails, op)
		return
	}
	s.fails[op] = err
}

func (s *MemStore) failure(op string) error {
	return s.fails[op]
}

func (s *MemStore) count(fn func(d *memData) int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Row counts of committed data.
func (s *MemStore) CompanyCount() int  { return s.count(func(d *memData) int { return len(d.companies) }) }
func (s *MemStore) PatentCount() int   { return s.count(func(d *memData) int { return len(d.patents) }) }
func (s *MemStore) AnalysisCount() int { return s.count(func(d *memData) int { return len(d.analyses) }) }
func (s *MemStore) UserCount() int     { return s.count(func(d *memData) int { return len(d.users) }) }

func (s *MemStore) Companies() company.Repository      { return &memCompanies{s: s, d: s.live} }
func (s *MemStore) Patents() patent.Repository         { return &memPatents{s: s, d: s.live} }
func (s *MemStore) Analyses() infringement.Repository  { return &memAnalyses{s: s, d: s.live} }
func (s *MemStore) Users() user.Repository             { return &memUsers{s: s, d: s.live} }
func (s *MemStore) Items() user.ItemRepository         { return &memItems{s: s, d: s.live} }
func (s *MemStore) SeedMarkers() seed.MarkerRepository { return &memMarkers{s: s, d: s.live} }

func (s *MemStore) live() *memData { return s.data }

// WithTx runs fn against a private copy.  Transactions are serialized;
// writes made outside a transaction while fn runs are lost on commit.
func (s *MemStore) WithTx(_ context.Context, fn func(tx store.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	if err := s.failure(OpBegin); err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}
	work := s.data.clone()
	s.mu.Unlock()

	tx := &memTx{s: s, d: func() *memData { return work }}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

type memTx struct {
	s *MemStore
	d func() *memData
}

func (t *memTx) Companies() company.Repository      { return &memCompanies{s: t.s, d: t.d} }
func (t *memTx) Patents() patent.Repository         { return &memPatents{s: t.s, d: t.d} }
func (t *memTx) Analyses() infringement.Repository  { return &memAnalyses{s: t.s, d: t.d} }
func (t *memTx) Users() user.Repository             { return &memUsers{s: t.s, d: t.d} }
func (t *memTx) Items() user.ItemRepository         { return &memItems{s: t.s, d: t.d} }
func (t *memTx) SeedMarkers() seed.MarkerRepository { return &memMarkers{s: t.s, d: t.d} }

// lock guards the live data and the failure table.
func (s *MemStore) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

func window[T any](all []T, page common.PageRequest) []T {
	page = page.Normalize()
	if page.Skip >= len(all) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return append([]T(nil), all[page.Skip:end]...)
}

type memCompanies struct {
	s *MemStore
	d func() *memData
}

func (r *memCompanies) List(_ context.Context, page common.PageRequest) ([]*company.Company, int64, error) {
	defer r.s.lock()()
	all := append([]*company.Company(nil), r.d().companies...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return window(all, page), int64(len(all)), nil
}

func (r *memCompanies) GetByID(_ context.Context, id uuid.UUID) (*company.Company, error) {
	defer r.s.lock()()
	for _, c := range r.d().companies {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeCompanyNotFound, "Company not found")
}

func (r *memCompanies) GetByName(_ context.Context, name string) (*company.Company, error) {
	defer r.s.lock()()
	for _, c := range r.d().companies {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeCompanyNotFound, "Company not found")
}

func (r *memCompanies) Insert(_ context.Context, c *company.Company) (bool, error) {
	defer r.s.lock()()
	if err := r.s.failure(OpCompanyInsert); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert company")
	}
	d := r.d()
	for _, existing := range d.companies {
		if existing.Name == c.Name {
			return false, nil
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = r.s.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	d.companies = append(d.companies, &cp)
	return true, nil
}

type memPatents struct {
	s *MemStore
	d func() *memData
}

func (r *memPatents) List(_ context.Context, page common.PageRequest) ([]*patent.Patent, int64, error) {
	defer r.s.lock()()
	all := append([]*patent.Patent(nil), r.d().patents...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].PublicationNumber < all[j].PublicationNumber })
	return window(all, page), int64(len(all)), nil
}

func (r *memPatents) GetByID(_ context.Context, id uuid.UUID) (*patent.Patent, error) {
	defer r.s.lock()()
	for _, p := range r.d().patents {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodePatentNotFound, "Patent not found")
}

func (r *memPatents) GetByPublicationNumber(_ context.Context, number string) (*patent.Patent, error) {
	defer r.s.lock()()
	for _, p := range r.d().patents {
		if p.PublicationNumber == number {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodePatentNotFound, "Patent not found")
}

func (r *memPatents) Insert(_ context.Context, p *patent.Patent) (bool, error) {
	defer r.s.lock()()
	if err := r.s.failure(OpPatentInsert); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert patent")
	}
	d := r.d()
	for _, existing := range d.patents {
		if existing.PublicationNumber == p.PublicationNumber {
			return false, nil
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = r.s.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	d.patents = append(d.patents, &cp)
	return true, nil
}

type memAnalyses struct {
	s *MemStore
	d func() *memData
}

func (r *memAnalyses) List(_ context.Context, page common.PageRequest) ([]*infringement.Analysis, int64, error) {
	defer r.s.lock()()
	all := append([]*infringement.Analysis(nil), r.d().analyses...)
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].AnalysisDate.Equal(all[j].AnalysisDate) {
			return all[i].AnalysisDate.After(all[j].AnalysisDate)
		}
		return strings.Compare(all[i].ID.String(), all[j].ID.String()) < 0
	})
	return window(all, page), int64(len(all)), nil
}

func (r *memAnalyses) GetByID(_ context.Context, id uuid.UUID) (*infringement.Analysis, error) {
	defer r.s.lock()()
	for _, a := range r.d().analyses {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeAnalysisNotFound, "Analysis not found")
}

func (r *memAnalyses) Insert(_ context.Context, a *infringement.Analysis) error {
	defer r.s.lock()()
	if err := r.s.failure(OpAnalysisInsert); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert infringement analysis")
	}
	d := r.d()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	for _, existing := range d.analyses {
		if existing.ID == a.ID {
			return errors.New(errors.ErrCodeConflict, "infringement analysis already exists")
		}
	}
	a.CreatedAt = r.s.Now()
	cp := *a
	d.analyses = append(d.analyses, &cp)
	return nil
}

type memUsers struct {
	s *MemStore
	d func() *memData
}

func (r *memUsers) List(_ context.Context, page common.PageRequest) ([]*user.User, int64, error) {
	defer r.s.lock()()
	all := append([]*user.User(nil), r.d().users...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return window(all, page), int64(len(all)), nil
}

func (r *memUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	defer r.s.lock()()
	for _, u := range r.d().users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUserNotFound, "User not found")
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	defer r.s.lock()()
	for _, u := range r.d().users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUserNotFound, "User not found")
}

func (r *memUsers) Insert(_ context.Context, u *user.User) error {
	defer r.s.lock()()
	if err := r.s.failure(OpUserInsert); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert user")
	}
	d := r.d()
	for _, existing := range d.users {
		if existing.Email == u.Email {
			return errors.New(errors.ErrCodeConflict, "email already exists")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	d.users = append(d.users, &cp)
	return nil
}

type memItems struct {
	s *MemStore
	d func() *memData
}

func (r *memItems) List(_ context.Context, page common.PageRequest) ([]*user.Item, int64, error) {
	defer r.s.lock()()
	all := append([]*user.Item(nil), r.d().items...)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Title != all[j].Title {
			return all[i].Title < all[j].Title
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	return window(all, page), int64(len(all)), nil
}

func (r *memItems) GetByID(_ context.Context, id uuid.UUID) (*user.Item, error) {
	defer r.s.lock()()
	for _, it := range r.d().items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeItemNotFound, "Item not found")
}

func (r *memItems) Insert(_ context.Context, it *user.Item) error {
	defer r.s.lock()()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	cp := *it
	r.d().items = append(r.d().items, &cp)
	return nil
}

type memMarkers struct {
	s *MemStore
	d func() *memData
}

func (r *memMarkers) Get(_ context.Context, source seed.Source) (*seed.Marker, error) {
	defer r.s.lock()()
	m, ok := r.d().markers[source]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "seed marker not found")
	}
	cp := *m
	return &cp, nil
}

func (r *memMarkers) Put(_ context.Context, m *seed.Marker) error {
	defer r.s.lock()()
	if err := r.s.failure(OpMarkerPut); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to write seed marker")
	}
	cp := *m
	r.d().markers[m.Source] = &cp
	return nil
}

//Personal.AI order the ending
