package sponsors

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/shared/database/dbtest"
	"boxoffice/pkg/api"
	"boxoffice/pkg/cache/cachetest"
	"boxoffice/pkg/logger"
)

func newTestService(t *testing.T) (Service, *cachetest.Memory) {
	t.Helper()
	db := dbtest.New(t, &Sponsor{})
	svc := NewService(NewRepository(db), logger.NewWithWriter(io.Discard, "error"))
	mem := cachetest.NewMemory()
	svc.SetCacheService(mem)
	return svc, mem
}

func TestCreateAndListSponsors(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	list, err := svc.GetAllSponsors(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := svc.CreateSponsor(ctx, api.CreateSponsorRequest{Name: " Acme ", Website: "acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)

	list, err = svc.GetAllSponsors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "acme.test", list[0].Website)
	assert.Equal(t, 2, mem.Fetches, "creation invalidates the cached list")
}

func TestDuplicateSponsorName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSponsor(ctx, api.CreateSponsorRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.CreateSponsor(ctx, api.CreateSponsorRequest{Name: "Acme"})
	assert.ErrorIs(t, err, ErrSponsorExists)
}

func TestBlankSponsorName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateSponsor(context.Background(), api.CreateSponsorRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrSponsorNameMissing)
}

func TestSponsorRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	r := gin.New()
	SetupSponsorRoutes(r.Group("/api"), NewController(svc), func(c *gin.Context) { c.Next() })

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/sponsors", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post(`{"name":"Globex","website":"globex.test"}`).Code)
	assert.Equal(t, http.StatusConflict, post(`{"name":"Globex"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"website":"x"}`).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sponsors", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var env api.Envelope[[]api.Sponsor]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Globex", env.Data[0].Name)
}
