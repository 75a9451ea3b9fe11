package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
)

type stubMappingRepo struct {
	mappings []syncdomain.CompanyMapping
	saved    *syncdomain.CompanyMapping
	deleted  uuid.UUID
	findErr  error
	saveErr  error
}

func (s *stubMappingRepo) FindByID(_ context.Context, id uuid.UUID) (*syncdomain.CompanyMapping, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.mappings {
		if s.mappings[i].ID == id {
			return &s.mappings[i], nil
		}
	}
	return nil, syncdomain.ErrMappingNotFound
}

func (s *stubMappingRepo) FindAll(_ context.Context) ([]syncdomain.CompanyMapping, error) {
	return s.mappings, s.findErr
}

func (s *stubMappingRepo) FindEnabled(_ context.Context) ([]syncdomain.CompanyMapping, error) {
	var out []syncdomain.CompanyMapping
	for _, m := range s.mappings {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMappingRepo) Save(_ context.Context, mapping *syncdomain.CompanyMapping) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = mapping
	return nil
}

func (s *stubMappingRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

type stubMappingValidator struct {
	err error
}

func (s *stubMappingValidator) ValidateSet(context.Context, *syncdomain.CompanyMapping) error {
	return s.err
}

func newMappingRouter(repo *stubMappingRepo, validator *stubMappingValidator) *gin.Engine {
	engine := gin.New()
	h := NewMappingHandler(repo, validator, zap.NewNop())
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestMappingList(t *testing.T) {
	m, err := syncdomain.NewCompanyMapping("Acme GmbH", "co1")
	require.NoError(t, err)
	repo := &stubMappingRepo{mappings: []syncdomain.CompanyMapping{*m}}
	engine := newMappingRouter(repo, &stubMappingValidator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mappings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                  `json:"success"`
		Data    []dto.MappingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Acme GmbH", resp.Data[0].ERPCompany)
	assert.Equal(t, "co1", resp.Data[0].NinjaCompanyID)
}

func TestMappingCreate(t *testing.T) {
	repo := &stubMappingRepo{}
	engine := newMappingRouter(repo, &stubMappingValidator{})

	body := []byte(`{"erp_company":"Acme GmbH","ninja_company_id":"co1","ninja_company_name":"Acme","is_default":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.saved)
	assert.Equal(t, "Acme GmbH", repo.saved.ERPCompany)
	assert.True(t, repo.saved.Enabled)
	assert.True(t, repo.saved.IsDefault)
}

func TestMappingCreate_MissingFields(t *testing.T) {
	repo := &stubMappingRepo{}
	engine := newMappingRouter(repo, &stubMappingValidator{})

	body := []byte(`{"ninja_company_id":"co1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "erp_company")
	assert.Nil(t, repo.saved)
}

func TestMappingCreate_DuplicateCompany(t *testing.T) {
	repo := &stubMappingRepo{}
	validator := &stubMappingValidator{err: syncdomain.ErrMappingDuplicateCompany}
	engine := newMappingRouter(repo, validator)

	body := []byte(`{"erp_company":"Acme GmbH","ninja_company_id":"co2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_CONFLICT")
	assert.Nil(t, repo.saved)
}

func TestMappingUpdate(t *testing.T) {
	m, err := syncdomain.NewCompanyMapping("Acme GmbH", "co1")
	require.NoError(t, err)
	repo := &stubMappingRepo{mappings: []syncdomain.CompanyMapping{*m}}
	engine := newMappingRouter(repo, &stubMappingValidator{})

	body := []byte(`{"erp_company":"Acme GmbH","ninja_company_id":"co1","enabled":false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/mappings/"+m.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.saved)
	assert.False(t, repo.saved.Enabled)
}

func TestMappingUpdate_NotFound(t *testing.T) {
	repo := &stubMappingRepo{}
	engine := newMappingRouter(repo, &stubMappingValidator{})

	body := []byte(`{"erp_company":"Acme GmbH","ninja_company_id":"co1"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/mappings/"+uuid.NewString(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestMappingDelete(t *testing.T) {
	m, err := syncdomain.NewCompanyMapping("Acme GmbH", "co1")
	require.NoError(t, err)
	repo := &stubMappingRepo{mappings: []syncdomain.CompanyMapping{*m}}
	engine := newMappingRouter(repo, &stubMappingValidator{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/mappings/"+m.ID.String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, m.ID, repo.deleted)
}

func TestMappingDelete_InvalidID(t *testing.T) {
	engine := newMappingRouter(&stubMappingRepo{}, &stubMappingValidator{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/mappings/not-a-uuid", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
