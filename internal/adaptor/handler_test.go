package adaptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sports-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestRespondOutcome(t *testing.T) {
	tests := []struct {
		outcome usecase.Outcome
		want    int
	}{
		{usecase.OutcomeSuccess, http.StatusOK},
		{usecase.OutcomeNotFound, http.StatusNotFound},
		{usecase.OutcomeRoomNotFound, http.StatusNotFound},
		{usecase.OutcomeMemberNotFound, http.StatusNotFound},
		{usecase.OutcomeConflict, http.StatusConflict},
		{usecase.OutcomeAlreadyExists, http.StatusConflict},
		{usecase.OutcomeInvalidDate, http.StatusBadRequest},
		{usecase.OutcomeAlreadyPaid, http.StatusUnprocessableEntity},
		{usecase.OutcomeCancelled, http.StatusUnprocessableEntity},
		{usecase.OutcomeTooLate, http.StatusUnprocessableEntity},
		{usecase.OutcomeAlreadyFinal, http.StatusUnprocessableEntity},
		{usecase.OutcomeError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			w := httptest.NewRecorder()
			respondOutcome(w, string(tt.outcome), "msg", nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
