package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"prover/internal/anoncreds/handler/mocks"
	"prover/internal/anoncreds/models"
	walletmodels "prover/internal/wallet/models"
	dErrors "prover/pkg/domain-errors"
	request "prover/pkg/platform/middleware/request"
)

type HandlerSuite struct {
	suite.Suite
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	r.Use(request.BodyLimit(64))
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, want, resp["error"])
}

func (s *HandlerSuite) TestStoreClaim() {
	s.T().Run("201 - returns claim uuid", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().StoreClaim(gomock.Any(), walletmodels.Handle(1), &models.StoreClaimRequest{
			IssuerDID:   "did1",
			SchemaSeqNo: 1,
			Values:      map[string]models.AttributeValue{"age": {Raw: "28", Encoded: "28"}},
		}).Return(models.ClaimID("c1"), nil)

		rec := do(r, http.MethodPost, "/handles/1/claims", `{"issuer_did":"did1","schema_seq_no":1,"values":{"age":["28","28"]}}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"claim_uuid":"c1"}`, rec.Body.String())
	})

	s.T().Run("400 - malformed body", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(r, http.MethodPost, "/handles/1/claims", `{"values":{"age":"28"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	s.T().Run("400 - invalid structure", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().StoreClaim(gomock.Any(), walletmodels.Handle(1), gomock.Any()).
			Return(models.ClaimID(""), dErrors.InvalidStructure("issuer_did is required"))
		rec := do(r, http.MethodPost, "/handles/1/claims", `{"schema_seq_no":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertErrorCode(t, rec, "invalid_structure")
	})
}

func (s *HandlerSuite) TestGetClaims() {
	s.T().Run("200 - decodes query filter", func(t *testing.T) {
		r, svc := newTestRouter(t)
		seq := 1
		svc.EXPECT().GetClaims(gomock.Any(), walletmodels.Handle(2), models.ClaimFilter{IssuerDID: "did1", SchemaSeqNo: &seq}).
			Return([]models.ClaimInfo{{ClaimUUID: "c1", Attrs: map[string]string{"age": "28"}, IssuerDID: "did1", SchemaSeqNo: 1}}, nil)

		q := url.Values{"issuer_did": {"did1"}, "schema_seq_no": {"1"}}
		rec := do(r, http.MethodGet, "/handles/2/claims?"+q.Encode(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"claim_uuid":"c1","attrs":{"age":"28"},"issuer_did":"did1","schema_seq_no":1}]`, rec.Body.String())
	})

	s.T().Run("200 - no filter", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().GetClaims(gomock.Any(), walletmodels.Handle(2), models.ClaimFilter{}).Return([]models.ClaimInfo{}, nil)
		rec := do(r, http.MethodGet, "/handles/2/claims?schema_seq_no=", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	s.T().Run("400 - non-numeric schema", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(r, http.MethodGet, "/handles/2/claims?schema_seq_no=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertErrorCode(t, rec, "invalid_structure")
	})
}

func (s *HandlerSuite) TestGetClaimsForProofRequest() {
	s.T().Run("200 - keeps request key order", func(t *testing.T) {
		r, svc := newTestRouter(t)
		body := `{"nonce":"1"}`
		res := &models.ClaimsForProofRequest{}
		res.Attrs.Set("z_attr", []models.ClaimInfo{})
		res.Attrs.Set("a_attr", []models.ClaimInfo{})
		svc.EXPECT().GetClaimsForProofRequest(gomock.Any(), walletmodels.Handle(3), []byte(body)).Return(res, nil)

		rec := do(r, http.MethodPost, "/handles/3/claims/proof-request", body)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"attrs":{"z_attr":[],"a_attr":[]},"predicates":{}}`, strings.TrimSpace(rec.Body.String()))
	})

	s.T().Run("400 - invalid structure", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().GetClaimsForProofRequest(gomock.Any(), walletmodels.Handle(3), gomock.Any()).
			Return(nil, dErrors.InvalidStructure("requested_attrs is required"))
		rec := do(r, http.MethodPost, "/handles/3/claims/proof-request", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertErrorCode(t, rec, "invalid_structure")
	})

	s.T().Run("404 - closed handle", func(t *testing.T) {
		r, svc := newTestRouter(t)
		svc.EXPECT().GetClaimsForProofRequest(gomock.Any(), walletmodels.Handle(3), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidHandle, "closed"))
		rec := do(r, http.MethodPost, "/handles/3/claims/proof-request", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	s.T().Run("404 - malformed handle", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(r, http.MethodPost, "/handles/x/claims/proof-request", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	s.T().Run("413 - body over limit", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := do(r, http.MethodPost, "/handles/3/claims/proof-request", `{"nonce":"`+strings.Repeat("n", 100)+`"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
