package clinics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medirdv-service/internal/app/services/backend"
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClinicBackendClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/clinics/3":
			w.Write([]byte(`{"id":3,"name":"Clinique du Parc","city":"Lyon","working_hours":[{"day":"mardi","enabled":true,"hours":"08:00 - 20:00"}]}`))
		case "/clinics":
			w.Write([]byte(`{"results":[{"id":3,"name":"Clinique du Parc"},{"id":4,"name":"Centre Santé"}],"next":""}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not found."}`))
		}
	}))
	defer server.Close()

	client := NewClinicBackendClient(backend.NewClient(zap.NewNop(), server.URL, time.Second, 0))

	t.Run("Find By ID", func(t *testing.T) {
		clinic, err := client.FindClinicByID(context.Background(), "3")
		require.NoError(t, err)
		assert.Equal(t, "Clinique du Parc", clinic.Name)
		assert.Equal(t, "Lyon", clinic.City)
		assert.Equal(t, availability.WeeklySchedule{{Day: "mardi", Enabled: true, Hours: "08:00 - 20:00"}}, clinic.WorkingHours)
	})

	t.Run("Find All", func(t *testing.T) {
		clinics, err := client.FindAllClinics(context.Background())
		require.NoError(t, err)
		require.Len(t, clinics, 2)
		assert.Equal(t, "4", clinics[1].ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := client.FindClinicByID(context.Background(), "99")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
	})
}
