package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-scenario-fx"
	"go-scenario-fx/convert"
	"go-scenario-fx/fx"
)

// Server dependencies for HTTP Server functions
type Server struct {
	Service convert.Service
	router  http.ServeMux
}

func NewServer(s convert.Service) *Server {
	server := &Server{
		Service: s,
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("/api/convert", s.convert())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// writeError writes a JSON error body with the given status
func writeError(rw http.ResponseWriter, status int, msg string) {
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(map[string]string{"error": msg})
}

// convert produces HTTP handler for converting scenario values into a reporting currency
func (s *Server) convert() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		Currency          string    `json:"currency"`
		Values            []float64 `json:"values"`
		ReportingCurrency string    `json:"reportingCurrency"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			rw.Header().Set("Allow", http.MethodPost)
			writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		bytes, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid request")
			return
		}

		var request request
		err = json.Unmarshal(bytes, &request)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid json")
			return
		}

		from, err := scenario.ParseCurrency(request.Currency)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid currency")
			return
		}
		to, err := scenario.ParseCurrency(request.ReportingCurrency)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid reporting currency")
			return
		}
		values, err := scenario.NewCurrencyValuesArray(from, request.Values)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid values")
			return
		}

		result, err := s.Service.Convert(r.Context(), values, to)
		if errors.Is(err, scenario.ErrRateCountMismatch) {
			writeError(rw, http.StatusUnprocessableEntity, "rate count mismatch")
			return
		}
		if errors.Is(err, fx.ErrShockCount) {
			writeError(rw, http.StatusUnprocessableEntity, "scenario count mismatch")
			return
		}
		if err != nil {
			writeError(rw, http.StatusBadGateway, "failed conversion")
			return
		}

		enc := json.NewEncoder(rw)
		err = enc.Encode(result)
		if err != nil {
			writeError(rw, http.StatusInternalServerError, "failed json encoding")
			return
		}
	}
}
