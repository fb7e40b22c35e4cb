package server

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResultsResponse is the JSON body of a processed roster
type ResultsResponse struct {
	RunID string      `json:"run_id,omitempty"`
	Rows  []ResultRow `json:"rows"`
}

// ResultRow is one exported row plus its lookup status
type ResultRow struct {
	RollNumber  string `json:"roll_number"`
	ProfileLink string `json:"leetcode_profile"`
	Username    string `json:"username"`
	Total       int    `json:"total_submissions"`
	Easy        int    `json:"easy"`
	Medium      int    `json:"medium"`
	Hard        int    `json:"hard"`
	Status      string `json:"status"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
