// Package server serves the upload form, results page and JSON API for
// roster lookups over HTTP using chi.
package server
