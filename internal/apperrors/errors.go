package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Kind classifies an AppError independently of the transport status it maps to.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// AppError is a domain failure with a stable machine-readable code.
// Codes are part of the public API contract and must never be renumbered.
type AppError struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Translation string `json:"translation"`
	Status      int    `json:"-"`
	Kind        Kind   `json:"-"`
	Err         error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by code, so wrapped copies still satisfy errors.Is
// against the package-level sentinels.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of e carrying err as its underlying cause.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// NewAppError wraps an infrastructure failure that has no domain meaning.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Code:        "SYS001",
		Title:       "Internal error",
		Description: message,
		Translation: "Erro interno",
		Status:      status,
		Kind:        KindInternal,
		Err:         err,
	}
}

func newError(code, title, description, translation string, status int, kind Kind) *AppError {
	return &AppError{
		Code:        code,
		Title:       title,
		Description: description,
		Translation: translation,
		Status:      status,
		Kind:        kind,
	}
}

// Domain errors.
var (
	ErrBookNotFound = newError("LBS001", "Book not found",
		"Requested book was not found", "Livro não encontrado",
		http.StatusNotFound, KindNotFound)
	ErrUserNotFound = newError("LBS002", "User not found",
		"Requested user was not found", "Usuário não encontrado",
		http.StatusNotFound, KindNotFound)
	ErrEmailAlreadyRegistered = newError("LBS003", "Email already registered",
		"Email address already registered", "Email já registrado",
		http.StatusBadRequest, KindConflict)
	ErrBookNotAvailable = newError("LBS004", "Book is not available",
		"Book is currently not available for loan", "Livro não está disponível",
		http.StatusBadRequest, KindConflict)
	ErrUserNotActive = newError("LBS005", "User is not active",
		"User status is not active", "Usuário não está ativo",
		http.StatusBadRequest, KindConflict)
	ErrMaxActiveLoansReached = newError("LBS006", "User has reached maximum active loans",
		"User reached the limit of active loans", "Usuário atingiu o máximo de empréstimos ativos",
		http.StatusBadRequest, KindConflict)
	ErrActiveLoanNotFound = newError("LBS007", "No active loan found for this book",
		"No active loan found for this book", "Nenhum empréstimo ativo encontrado para este livro",
		http.StatusNotFound, KindNotFound)
	ErrLoanNotFound = newError("LBS008", "Loan not found",
		"Requested loan was not found", "Empréstimo não encontrado",
		http.StatusNotFound, KindNotFound)
	ErrReservationNotFound = newError("LBS009", "Reservation not found",
		"Requested reservation was not found", "Reserva não encontrada",
		http.StatusNotFound, KindNotFound)
	ErrCannotReserveAvailableBook = newError("LBS010", "Cannot reserve available book",
		"Cannot reserve an available book, borrow it directly instead",
		"Não é possível reservar um livro disponível, pegue emprestado diretamente",
		http.StatusBadRequest, KindConflict)
	ErrDuplicateActiveReservation = newError("LBS011", "User already has active reservation for this book",
		"User already has an active reservation for this book", "Usuário já possui uma reserva ativa para este livro",
		http.StatusBadRequest, KindConflict)
	ErrReservationAlreadyCancelled = newError("LBS012", "Reservation is already cancelled",
		"This reservation has already been cancelled", "Esta reserva já foi cancelada",
		http.StatusBadRequest, KindConflict)
	ErrCannotCancelCompletedReservation = newError("LBS013", "Cannot cancel completed reservation",
		"Cannot cancel a reservation that has already been completed", "Não é possível cancelar uma reserva já completada",
		http.StatusBadRequest, KindConflict)
	ErrCannotCompleteInactiveReservation = newError("LBS014", "Can only complete active reservations",
		"Only active reservations can be completed", "Apenas reservas ativas podem ser completadas",
		http.StatusBadRequest, KindConflict)
	ErrCannotRenewInactiveLoan = newError("LBS015", "Cannot renew this loan",
		"Only active loans can be renewed", "Apenas empréstimos ativos podem ser renovados",
		http.StatusBadRequest, KindConflict)
	ErrCannotRenewOverdueLoan = newError("LBS016", "Cannot renew overdue loan",
		"Overdue loans must be returned before renewal", "Empréstimos em atraso devem ser devolvidos antes da renovação",
		http.StatusBadRequest, KindConflict)
	ErrRenewalLimitReached = newError("LBS017", "Renewal limit reached",
		"Loan has already been renewed the maximum number of times", "Empréstimo atingiu o limite de renovações",
		http.StatusBadRequest, KindConflict)
	ErrBookHasActiveLoan = newError("LBS018", "Book has an active loan",
		"Book status cannot leave loaned while a loan is active, return the book instead",
		"Livro possui empréstimo ativo, realize a devolução",
		http.StatusBadRequest, KindConflict)
)

// Validation errors.
var (
	ErrInvalidKey = newError("VAL001", "Invalid key",
		"Identifier is not a valid UUID", "Identificador inválido",
		http.StatusBadRequest, KindValidation)
	ErrUnknownStatus = newError("VAL002", "Invalid status",
		"Status name does not exist for this entity", "Status inexistente para esta entidade",
		http.StatusBadRequest, KindValidation)
	ErrInvalidExportFormat = newError("VAL003", "Invalid export format",
		"Unsupported format. Use 'csv' or 'pdf'", "Formato não suportado. Use 'csv' ou 'pdf'",
		http.StatusBadRequest, KindValidation)
	ErrInvalidPagination = newError("VAL004", "Invalid pagination",
		"page and per_page must be >= 1 and per_page <= 1000", "Paginação inválida",
		http.StatusBadRequest, KindValidation)
	ErrInvalidRequest = newError("VAL005", "Invalid request",
		"Request body is malformed or misses required fields", "Requisição inválida",
		http.StatusBadRequest, KindValidation)
)

// Authentication errors.
var (
	ErrMissingCredentials = newError("AUT001", "Missing credentials",
		"Authorization header is required", "Credenciais ausentes",
		http.StatusUnauthorized, KindUnauthorized)
	ErrInvalidCredentials = newError("AUT002", "Invalid credentials",
		"Credentials are invalid", "Credenciais inválidas",
		http.StatusUnauthorized, KindUnauthorized)
)

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
