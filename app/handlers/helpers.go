package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	zlog "github.com/rs/zerolog/log"
	"github.com/unrolled/render"

	"github.com/mechstore/go-mechstore/app/apperrors"
)

// errorResponse is the JSON error body: {"detail": "...", "code": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindDuplicate:
		return http.StatusConflict
	case apperrors.KindInvalidReference, apperrors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(rnd *render.Render, w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		zlog.Error().Err(err).Msg("request failed with store error")
		detail = "database error occurred"
	}
	_ = rnd.JSON(w, status, errorResponse{Detail: detail, Code: string(kind)})
}

func writeValidationError(rnd *render.Render, w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = fe.Tag()
	}
	_ = rnd.JSON(w, http.StatusBadRequest, map[string]any{
		"detail": "invalid request payload",
		"code":   string(apperrors.KindValidation),
		"fields": fields,
	})
}

func decodeJSON(rnd *render.Render, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{
			Detail: "malformed JSON body",
			Code:   string(apperrors.KindValidation),
		})
		return false
	}
	return true
}

func pathID(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func writeBadID(rnd *render.Render, w http.ResponseWriter) {
	_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{
		Detail: "invalid id in path",
		Code:   string(apperrors.KindValidation),
	})
}
