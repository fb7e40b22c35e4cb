package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"lcstats/pkg/leetcode"
	"lcstats/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type indexPage struct {
	RollColumn    string
	ProfileColumn string
	MaxUploadMB   int64
}

type resultsPage struct {
	Header      []string
	Rows        models.ResultSet
	Failed      int
	CSVFileName string
	CSVDataURI  template.URL
	Warning     string
	Error       string
}

func parsePages(baseURL string) *template.Template {
	funcs := template.FuncMap{
		"profileURL": func(username string) string {
			return leetcode.ProfileURL(baseURL, username)
		},
		"ok": func(status models.LookupStatus) bool {
			return status == models.LookupOK
		},
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// render executes a page into a buffer so template errors never send a partial body
func (s *Server) render(w http.ResponseWriter, code int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.WithError(err).WithField("template", name).Error("Failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}
