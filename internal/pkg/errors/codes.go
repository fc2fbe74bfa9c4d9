package errors

import "net/http"

var (
	ErrInvalidFile = New(
		"INVALID_FILE",
		"Uploaded file must be a valid DXF",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = New(
		"FILE_TOO_LARGE",
		"Uploaded file exceeds the size limit",
		http.StatusRequestEntityTooLarge,
	)

	ErrUnreadableFile = New(
		"UNREADABLE_FILE",
		"Failed to read uploaded file",
		http.StatusBadRequest,
	)

	ErrMalformedGeometry = New(
		"MALFORMED_GEOMETRY",
		"Drawing contains geometry that cannot be measured",
		http.StatusUnprocessableEntity,
	)

	ErrAnalysisNotFound = New(
		"ANALYSIS_NOT_FOUND",
		"Analysis record not found",
		http.StatusNotFound,
	)

	ErrInvalidAnalysisID = New(
		"INVALID_ANALYSIS_ID",
		"Invalid analysis ID",
		http.StatusBadRequest,
	)

	ErrHistoryDisabled = New(
		"HISTORY_DISABLED",
		"Analysis history storage is not enabled",
		http.StatusNotImplemented,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
