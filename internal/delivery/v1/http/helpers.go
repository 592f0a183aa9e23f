package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const maxRequestBodySize = 1 << 20

// ToHTTPResponse сопоставляет вид ошибки HTTP-статусу и тексту ответа.
// Текст внутренних ошибок клиенту не раскрывается.
func ToHTTPResponse(err error) (int, string) {
	var notFound *e.NotFoundError
	var validation *e.ValidationError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrInvalidRequestBody):
		return http.StatusBadRequest, e.ErrInvalidRequestBody.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// WriteError пишет ошибку простым текстом.
func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, msg)
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parseProductID читает {id} из пути. Нечисловой id — ошибка транспорта, а не 404.
func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidProductID)
	}

	return id, nil
}

// decodeOptionalJSON разбирает тело запроса в *T. Пустое тело и литерал null дают nil.
func decodeOptionalJSON[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidRequestBody)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var body *T
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidRequestBody)
	}

	return body, nil
}
