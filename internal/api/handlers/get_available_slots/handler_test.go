package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	req  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/hosts/{hostId}/available-slots", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	date := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:   date,
		HostID: 7,
		Slots:  []types.TimeString{"09:00", "09:30"},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "/hosts/7/available-slots?date=2030-05-06&duration=60")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, AvailableSlotsResponse{Date: "2030-05-06", HostID: 7, Slots: []string{"09:00", "09:30"}}, body)
	assert.Equal(t, 60, uc.req.DurationMinutes)
	assert.True(t, uc.req.Date.Equal(date))
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{name: "invalid host", target: "/hosts/abc/available-slots?date=2030-05-06", wantStatus: http.StatusBadRequest},
		{name: "missing date", target: "/hosts/7/available-slots", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/hosts/7/available-slots?date=06.05.2030", wantStatus: http.StatusBadRequest},
		{name: "bad duration", target: "/hosts/7/available-slots?date=2030-05-06&duration=-5", wantStatus: http.StatusBadRequest},
		{name: "invalid input", target: "/hosts/7/available-slots?date=2030-05-06", ucErr: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage failure", target: "/hosts/7/available-slots?date=2030-05-06", ucErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusBadGateway},
		{name: "unexpected", target: "/hosts/7/available-slots?date=2030-05-06", ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.ucErr}

			rec := serve(NewHandler(uc, nopLogger{}), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
