package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
)

// fakeTx stages writes until Commit and holds row locks until the transaction ends.
type fakeTx struct {
	pgx.Tx
	held    []*sync.Mutex
	pending []func()
	done    bool
}

// fakeStore is an in-memory implementation of every repository port.
// Row locks are real mutexes so FOR UPDATE semantics can be exercised concurrently.
type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	statuses     map[domain.EntityType][]domain.Status
	users        map[uuid.UUID]domain.User
	books        map[uuid.UUID]domain.Book
	loans        map[uuid.UUID]domain.Loan
	reservations map[uuid.UUID]domain.Reservation
	events       []domain.StatusEvent
	rowLocks     map[string]*sync.Mutex

	commits   int
	rollbacks int
	failOn    map[string]error
	pingErr   error
}

var (
	_ portsrepo.TransactionManager          = (*fakeStore)(nil)
	_ portsrepo.StatusRepository            = (*fakeStore)(nil)
	_ portsrepo.EventRepository             = (*fakeStore)(nil)
	_ portsrepo.UserRepositoryFacade        = (*fakeStore)(nil)
	_ portsrepo.BookRepositoryFacade        = (*fakeStore)(nil)
	_ portsrepo.LoanRepositoryFacade        = (*fakeStore)(nil)
	_ portsrepo.ReservationRepositoryFacade = (*fakeStore)(nil)
	_ portsrepo.HealthChecker               = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	s := &fakeStore{
		statuses:     map[domain.EntityType][]domain.Status{},
		users:        map[uuid.UUID]domain.User{},
		books:        map[uuid.UUID]domain.Book{},
		loans:        map[uuid.UUID]domain.Loan{},
		reservations: map[uuid.UUID]domain.Reservation{},
		rowLocks:     map[string]*sync.Mutex{},
		failOn:       map[string]error{},
	}
	seed := map[domain.EntityType][]string{
		domain.EntityUser:        {domain.UserStatusActive, domain.UserStatusSuspended, domain.UserStatusDeactivated},
		domain.EntityBook:        {domain.BookStatusAvailable, domain.BookStatusLoaned},
		domain.EntityLoan:        {domain.LoanStatusActive, domain.LoanStatusReturned},
		domain.EntityReservation: {domain.ReservationStatusActive, domain.ReservationStatusCancelled, domain.ReservationStatusCompleted},
	}
	for entity, enums := range seed {
		for _, e := range enums {
			s.nextID++
			s.statuses[entity] = append(s.statuses[entity], domain.Status{ID: s.nextID, Enumerator: e, Translation: strings.ToUpper(e)})
		}
	}
	return s
}

func (s *fakeStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       s,
		StatusRepo:      s,
		EventRepo:       s,
		UserRepo:        s,
		BookRepo:        s,
		LoanRepo:        s,
		ReservationRepo: s,
		HealthRepo:      s,
	}
}

func (s *fakeStore) status(entity domain.EntityType, enum string) domain.Status {
	for _, st := range s.statuses[entity] {
		if st.Enumerator == enum {
			return st
		}
	}
	panic("unknown status " + enum)
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) fail(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failOn[op]
}

// seedUser and friends write committed rows directly.

func (s *fakeStore) seedUser(name, email, status string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.User{ID: s.id(), UserKey: uuid.New(), Name: name, Email: email, Status: s.status(domain.EntityUser, status), CreatedAt: time.Now().UTC()}
	s.users[u.UserKey] = u
	return u
}

func (s *fakeStore) seedBook(title, status string) domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := domain.Book{ID: s.id(), BookKey: uuid.New(), Title: title, Author: "Author", Genre: domain.DefaultGenre, Status: s.status(domain.EntityBook, status), CreatedAt: time.Now().UTC()}
	s.books[b.BookKey] = b
	return b
}

func (s *fakeStore) seedLoan(user domain.User, book domain.Book, status string, start, due time.Time) domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := domain.Loan{
		ID: s.id(), LoanKey: uuid.New(),
		UserID: user.ID, UserKey: user.UserKey, UserEmail: user.Email,
		BookID: book.ID, BookKey: book.BookKey, BookTitle: book.Title,
		Status: s.status(domain.EntityLoan, status), StartDate: start, DueDate: due,
	}
	s.loans[l.LoanKey] = l
	return l
}

func (s *fakeStore) seedReservation(user domain.User, book domain.Book, status string) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	r := domain.Reservation{
		ID: s.id(), ReservationKey: uuid.New(),
		UserID: user.ID, UserKey: user.UserKey, UserName: user.Name,
		BookID: book.ID, BookKey: book.BookKey, BookTitle: book.Title,
		Status: s.status(domain.EntityReservation, status), ReservedAt: now, ExpiresAt: now.Add(7 * 24 * time.Hour),
	}
	s.reservations[r.ReservationKey] = r
	return r
}

func (s *fakeStore) book(key uuid.UUID) domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[key]
}

func (s *fakeStore) loan(key uuid.UUID) domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loans[key]
}

func (s *fakeStore) activeLoansOfBook(bookID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.loans {
		if l.BookID == bookID && l.Status.Is(domain.LoanStatusActive) {
			n++
		}
	}
	return n
}

func (s *fakeStore) eventsOf(entity domain.EntityType, id int64) []domain.StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.StatusEvent
	for _, ev := range s.events {
		if ev.EntityType == entity && ev.EntityID == id {
			out = append(out, ev)
		}
	}
	return out
}

// --- TransactionManager ---

func (s *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := s.fail("Begin"); err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return &fakeTx{}, nil
}

func (s *fakeStore) Commit(ctx context.Context, tx pgx.Tx) error {
	ftx := tx.(*fakeTx)
	if ftx.done {
		return errors.New("transaction already closed")
	}
	if err := s.fail("Commit"); err != nil {
		s.end(ftx, false)
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	s.end(ftx, true)
	return nil
}

func (s *fakeStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	ftx := tx.(*fakeTx)
	if ftx.done {
		return nil
	}
	s.end(ftx, false)
	return nil
}

func (s *fakeStore) end(tx *fakeTx, apply bool) {
	s.mu.Lock()
	if apply {
		for _, w := range tx.pending {
			w()
		}
		s.commits++
	} else {
		s.rollbacks++
	}
	s.mu.Unlock()
	tx.done = true
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
	tx.held = nil
}

func (s *fakeStore) lock(tx pgx.Tx, row string) {
	ftx := tx.(*fakeTx)
	s.mu.Lock()
	m, ok := s.rowLocks[row]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[row] = m
	}
	s.mu.Unlock()
	for _, h := range ftx.held {
		if h == m {
			return
		}
	}
	m.Lock()
	ftx.held = append(ftx.held, m)
}

func (s *fakeStore) stage(tx pgx.Tx, w func()) {
	ftx := tx.(*fakeTx)
	ftx.pending = append(ftx.pending, w)
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return s.pingErr
}

// --- StatusRepository ---

func (s *fakeStore) FindStatusByEnumerator(ctx context.Context, entityType domain.EntityType, enumerator string) (*domain.Status, error) {
	if err := s.fail("FindStatusByEnumerator"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.statuses[entityType] {
		if st.Enumerator == enumerator {
			out := st
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindStatuses(ctx context.Context, entityType domain.EntityType) ([]domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Status(nil), s.statuses[entityType]...), nil
}

// --- EventRepository ---

func (s *fakeStore) AppendEvent(ctx context.Context, tx pgx.Tx, event domain.StatusEvent) error {
	if err := s.fail("AppendEvent"); err != nil {
		return err
	}
	s.stage(tx, func() {
		event.ID = s.id()
		s.events = append(s.events, event)
	})
	return nil
}

func (s *fakeStore) FindEvents(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.StatusEvent, error) {
	return s.eventsOf(entityType, entityID), nil
}

// --- Users ---

func (s *fakeStore) FindUserByKey(ctx context.Context, userKey uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userKey]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *fakeStore) FindUserByKeyForUpdate(ctx context.Context, tx pgx.Tx, userKey uuid.UUID) (*domain.User, error) {
	s.lock(tx, "user:"+userKey.String())
	return s.FindUserByKey(ctx, userKey)
}

func (s *fakeStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) FindUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	s.mu.Lock()
	all := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), nil
}

func (s *fakeStore) SaveUser(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	s.mu.Lock()
	user.ID = s.id()
	user.CreatedAt = time.Now().UTC()
	for _, u := range s.users {
		if u.Email == user.Email {
			s.mu.Unlock()
			return apperrors.ErrDuplicate
		}
	}
	s.mu.Unlock()
	saved := *user
	s.stage(tx, func() { s.users[saved.UserKey] = saved })
	return nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email && u.ID != user.ID {
			return apperrors.ErrDuplicate
		}
	}
	current, ok := s.users[user.UserKey]
	if !ok {
		return apperrors.ErrNotFound
	}
	current.Name, current.Email = user.Name, user.Email
	s.users[user.UserKey] = current
	return nil
}

func (s *fakeStore) UpdateUserStatus(ctx context.Context, tx pgx.Tx, userID int64, status domain.Status) error {
	s.stage(tx, func() {
		for k, u := range s.users {
			if u.ID == userID {
				u.Status = status
				s.users[k] = u
			}
		}
	})
	return nil
}

// --- Books ---

func (s *fakeStore) FindBookByKey(ctx context.Context, bookKey uuid.UUID) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[bookKey]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (s *fakeStore) FindBookByKeyForUpdate(ctx context.Context, tx pgx.Tx, bookKey uuid.UUID) (*domain.Book, error) {
	s.lock(tx, "book:"+bookKey.String())
	return s.FindBookByKey(ctx, bookKey)
}

func (s *fakeStore) FindBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	s.mu.Lock()
	var all []domain.Book
	for _, b := range s.books {
		if filter.Genre == "" || strings.EqualFold(b.Genre, filter.Genre) {
			all = append(all, b)
		}
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, filter.Page), nil
}

func (s *fakeStore) FindGenres(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	seen := map[string]bool{}
	for _, b := range s.books {
		seen[b.Genre] = true
	}
	s.mu.Unlock()
	var out []string
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out, nil
}

func (s *fakeStore) SaveBook(ctx context.Context, tx pgx.Tx, book *domain.Book) error {
	s.mu.Lock()
	book.ID = s.id()
	book.CreatedAt = time.Now().UTC()
	s.mu.Unlock()
	saved := *book
	s.stage(tx, func() { s.books[saved.BookKey] = saved })
	return nil
}

func (s *fakeStore) UpdateBook(ctx context.Context, book domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.books[book.BookKey]
	if !ok {
		return apperrors.ErrNotFound
	}
	current.Title, current.Author, current.Genre = book.Title, book.Author, book.Genre
	s.books[book.BookKey] = current
	return nil
}

func (s *fakeStore) UpdateBookStatus(ctx context.Context, tx pgx.Tx, bookID int64, status domain.Status) error {
	if err := s.fail("UpdateBookStatus"); err != nil {
		return err
	}
	s.stage(tx, func() {
		for k, b := range s.books {
			if b.ID == bookID {
				b.Status = status
				s.books[k] = b
			}
		}
	})
	return nil
}

// --- Loans ---

func (s *fakeStore) FindLoanByKey(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[loanKey]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (s *fakeStore) FindLoanByKeyForUpdate(ctx context.Context, tx pgx.Tx, loanKey uuid.UUID) (*domain.Loan, error) {
	s.lock(tx, "loan:"+loanKey.String())
	return s.FindLoanByKey(ctx, loanKey)
}

func (s *fakeStore) FindLoanByBookAndStatus(ctx context.Context, bookID int64, statusID int64) (*domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *domain.Loan
	for _, l := range s.loans {
		if l.BookID == bookID && l.Status.ID == statusID && (found == nil || l.ID > found.ID) {
			l := l
			found = &l
		}
	}
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (s *fakeStore) FindLoanByBookAndStatusForUpdate(ctx context.Context, tx pgx.Tx, bookID int64, statusID int64) (*domain.Loan, error) {
	l, err := s.FindLoanByBookAndStatus(ctx, bookID, statusID)
	if err != nil {
		return nil, err
	}
	s.lock(tx, "loan:"+l.LoanKey.String())
	return s.FindLoanByKey(ctx, l.LoanKey)
}

func (s *fakeStore) CountLoansByUserAndStatus(ctx context.Context, tx pgx.Tx, userID int64, statusID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.loans {
		if l.UserID == userID && l.Status.ID == statusID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) FindLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	s.mu.Lock()
	var all []domain.Loan
	for _, l := range s.loans {
		if filter.Status != "" && !l.Status.Is(filter.Status) {
			continue
		}
		if filter.Overdue && !l.IsOverdue(filter.Now) {
			continue
		}
		if filter.UserKey != nil && l.UserKey != *filter.UserKey {
			continue
		}
		all = append(all, l)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, filter.Page), nil
}

func (s *fakeStore) SaveLoan(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error {
	s.mu.Lock()
	loan.ID = s.id()
	s.mu.Unlock()
	saved := *loan
	s.stage(tx, func() { s.loans[saved.LoanKey] = saved })
	return nil
}

func (s *fakeStore) UpdateLoan(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	s.stage(tx, func() {
		current := s.loans[loan.LoanKey]
		current.Status = loan.Status
		current.DueDate = loan.DueDate
		current.ReturnDate = loan.ReturnDate
		current.FineAmount = loan.FineAmount
		current.RenewalCount = loan.RenewalCount
		s.loans[loan.LoanKey] = current
	})
	return nil
}

// --- Reservations ---

func (s *fakeStore) FindReservationByKey(ctx context.Context, key uuid.UUID) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *fakeStore) FindReservationByKeyForUpdate(ctx context.Context, tx pgx.Tx, key uuid.UUID) (*domain.Reservation, error) {
	s.lock(tx, "reservation:"+key.String())
	return s.FindReservationByKey(ctx, key)
}

func (s *fakeStore) FindReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	s.mu.Lock()
	var all []domain.Reservation
	for _, r := range s.reservations {
		if filter.Status != "" && !r.Status.Is(filter.Status) {
			continue
		}
		if filter.UserKey != nil && r.UserKey != *filter.UserKey {
			continue
		}
		if filter.BookKey != nil && r.BookKey != *filter.BookKey {
			continue
		}
		all = append(all, r)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, filter.Page), nil
}

func (s *fakeStore) ExistsReservation(ctx context.Context, tx pgx.Tx, userID, bookID, statusID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.UserID == userID && r.BookID == bookID && r.Status.ID == statusID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SaveReservation(ctx context.Context, tx pgx.Tx, r *domain.Reservation) error {
	s.mu.Lock()
	r.ID = s.id()
	s.mu.Unlock()
	saved := *r
	s.stage(tx, func() { s.reservations[saved.ReservationKey] = saved })
	return nil
}

func (s *fakeStore) UpdateReservation(ctx context.Context, tx pgx.Tx, r domain.Reservation) error {
	s.stage(tx, func() {
		current := s.reservations[r.ReservationKey]
		current.Status = r.Status
		current.CompletedAt = r.CompletedAt
		s.reservations[r.ReservationKey] = current
	})
	return nil
}

func paginate[T any](all []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(all) {
		return []T{}
	}
	end := start + page.Limit()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
