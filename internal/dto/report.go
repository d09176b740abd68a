package dto

// ExportParams selects the rendering of a report export.
type ExportParams struct {
	Format string `form:"format,default=csv"`
}

// ExportLoansParams filters the loans report.
type ExportLoansParams struct {
	ExportParams
	Status  string `form:"status"`
	Overdue bool   `form:"overdue"`
	UserKey string `form:"user_key"`
}

// ExportBooksParams filters the books report.
type ExportBooksParams struct {
	ExportParams
	Genre string `form:"genre"`
}

// ExportReservationsParams filters the reservations report.
type ExportReservationsParams struct {
	ExportParams
	Status  string `form:"status"`
	UserKey string `form:"user_key"`
	BookKey string `form:"book_key"`
}
