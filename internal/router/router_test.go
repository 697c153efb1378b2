package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/logic"
	"github.com/blues/rfs/internal/repository/repositorytest"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	authority = "0x1111111111111111111111111111111111111111"
	creator   = "0x2222222222222222222222222222222222222222"
	alice     = "0x3333333333333333333333333333333333333333"
	reviewer  = "0x5555555555555555555555555555555555555555"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
}

func newClient(t *testing.T) *client {
	t.Helper()
	codec, err := chain.NewEventCodec()
	require.NoError(t, err)
	return &client{t: t, engine: Setup(logic.NewServices(repositorytest.NewDB(t), codec), gin.TestMode)}
}

func (c *client) do(method, path, caller string, body interface{}) (int, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (c *client) ok(method, path, caller string, body interface{}, out interface{}) {
	c.t.Helper()
	code, env := c.do(method, path, caller, body)
	require.True(c.t, code < 300, "%s %s -> %d %s", method, path, code, env.Message)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
}

func TestResearchFundingFlow(t *testing.T) {
	require := require.New(t)
	c := newClient(t)

	c.ok(http.MethodPost, "/api/v1/platform/initialize", authority, gin.H{"feeRate": 250, "minFundingAmount": 100}, nil)
	c.ok(http.MethodPost, "/api/v1/validators", authority, gin.H{"address": reviewer}, nil)
	c.ok(http.MethodPost, "/api/v1/ledger/accounts/"+alice+"/deposit", authority, gin.H{"amount": 1000}, nil)

	c.ok(http.MethodPost, "/api/v1/projects", creator, gin.H{
		"projectId":    1,
		"title":        "Ocean acidity buoys",
		"fundingGoal":  1000,
		"durationDays": 30,
		"milestones": []gin.H{
			{"title": "Build", "fundingPercentage": 60},
			{"title": "Deploy", "fundingPercentage": 40},
		},
	}, nil)

	var project struct {
		Status         string `json:"status"`
		CurrentFunding uint64 `json:"current_funding"`
	}
	c.ok(http.MethodPost, "/api/v1/projects/1/fund", alice, gin.H{"amount": 400}, &project)
	require.Equal("active", project.Status)

	code, env := c.do(http.MethodPost, "/api/v1/projects/1/fund", alice, gin.H{"amount": 700})
	require.Equal(http.StatusUnprocessableEntity, code)
	require.Equal("ExceedsFundingGoal", env.Code)

	c.ok(http.MethodPost, "/api/v1/projects/1/fund", alice, gin.H{"amount": 600}, &project)
	require.Equal("funded", project.Status)
	require.Equal(uint64(1000), project.CurrentFunding)

	hash := crypto.Keccak256Hash([]byte("field report")).Hex()
	c.ok(http.MethodPost, "/api/v1/projects/1/milestones/0/submit", creator, gin.H{"evidenceHash": hash}, nil)

	code, env = c.do(http.MethodPost, "/api/v1/projects/1/milestones/0/validate", alice, gin.H{"approved": true})
	require.Equal(http.StatusForbidden, code)
	require.Equal("NotValidator", env.Code)

	var result struct {
		ReleaseAmount uint64 `json:"release_amount"`
	}
	c.ok(http.MethodPost, "/api/v1/projects/1/milestones/0/validate", reviewer, gin.H{"approved": true}, &result)
	require.Equal(uint64(600), result.ReleaseAmount)

	var account struct {
		Balance uint64 `json:"balance"`
	}
	c.ok(http.MethodGet, "/api/v1/ledger/accounts/"+creator, "", nil, &account)
	require.Equal(uint64(600), account.Balance)

	var nft struct {
		Rarity string `json:"rarity"`
	}
	c.ok(http.MethodPost, "/api/v1/projects/1/nfts", alice, nil, &nft)
	require.Equal("legendary", nft.Rarity)
	c.ok(http.MethodGet, "/api/v1/projects/1/nfts/"+alice, "", nil, &nft)

	code, env = c.do(http.MethodPost, "/api/v1/projects/1/nfts", alice, nil)
	require.Equal(http.StatusConflict, code)
	require.Equal("NFTAlreadyMinted", env.Code)

	var events struct {
		Events []struct {
			EventType string `json:"event_type"`
		} `json:"events"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	c.ok(http.MethodGet, "/api/v1/events?project_id=1", "", nil, &events)
	require.Equal(int64(7), events.Pagination.Total)
	require.Equal("ProjectCreated", events.Events[0].EventType)
	require.Equal("NFTMinted", events.Events[6].EventType)
}

func TestErrorStatuses(t *testing.T) {
	c := newClient(t)
	c.ok(http.MethodPost, "/api/v1/platform/initialize", authority, gin.H{"minFundingAmount": 100}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		caller string
		body   interface{}
		status int
		code   string
	}{
		{"missing caller", http.MethodPost, "/api/v1/platform/pause", "", nil, http.StatusUnauthorized, "MissingCaller"},
		{"malformed caller", http.MethodPost, "/api/v1/platform/pause", "0x12", nil, http.StatusBadRequest, "InvalidAddress"},
		{"not authority", http.MethodPost, "/api/v1/platform/pause", alice, nil, http.StatusForbidden, "Unauthorized"},
		{"initialize twice", http.MethodPost, "/api/v1/platform/initialize", authority, gin.H{"minFundingAmount": 100}, http.StatusConflict, "AlreadyInitialized"},
		{"unknown project", http.MethodGet, "/api/v1/projects/42", "", nil, http.StatusNotFound, "ProjectNotFound"},
		{"bad project id", http.MethodGet, "/api/v1/projects/abc", "", nil, http.StatusBadRequest, "BadRequest"},
		{"unknown account", http.MethodGet, "/api/v1/ledger/accounts/" + alice, "", nil, http.StatusNotFound, "AccountNotFound"},
		{"funding too low", http.MethodPost, "/api/v1/projects", creator, gin.H{
			"projectId": 1, "title": "x", "fundingGoal": 10,
			"milestones": []gin.H{{"title": "m", "fundingPercentage": 100}},
		}, http.StatusUnprocessableEntity, "FundingTooLow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := c.do(tt.method, tt.path, tt.caller, tt.body)
			require.Equal(t, tt.status, code)
			require.False(t, env.Success)
			require.Equal(t, tt.code, env.Code)
		})
	}
}

func TestInsufficientFundsMapsTo402(t *testing.T) {
	require := require.New(t)
	c := newClient(t)
	c.ok(http.MethodPost, "/api/v1/platform/initialize", authority, gin.H{"minFundingAmount": 100}, nil)
	c.ok(http.MethodPost, "/api/v1/ledger/accounts/"+alice+"/deposit", authority, gin.H{"amount": 50}, nil)
	c.ok(http.MethodPost, "/api/v1/projects", creator, gin.H{
		"projectId": 9, "title": "Seismic array", "fundingGoal": 1000,
		"milestones": []gin.H{{"title": "m", "fundingPercentage": 100}},
	}, nil)

	code, env := c.do(http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", 9), alice, gin.H{"amount": 80})
	require.Equal(http.StatusPaymentRequired, code)
	require.Equal("InsufficientFunds", env.Code)
}

func TestHealthAndCORS(t *testing.T) {
	require := require.New(t)
	c := newClient(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "ok")

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/projects", nil)
	w = httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	require.Equal(http.StatusNoContent, w.Code)
	require.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Caller-Address")
}
