// Package export writes result sets as CSV or XLSX and reads CSV exports back.
package export
