package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"burn_tracker/internal/ai"
	"burn_tracker/internal/chain"
	"burn_tracker/internal/domain"
	"burn_tracker/internal/ledger"
	"burn_tracker/internal/store/memory"
	"burn_tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func makeToken(userID uint) (string, error) {
	return utils.GenerateJWT(userID, testSecret)
}

func testAddr(n int) string {
	return fmt.Sprintf("0x%040x", n)
}

func testHash(n int) string {
	return fmt.Sprintf("0x%064x", n)
}

// newTestServer wires a router over fresh in-memory collaborators.
func newTestServer(t *testing.T) (*gin.Engine, *memory.Store, *chain.Stub, *ai.Stub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := memory.New()
	reader := chain.NewStub()
	auditor := &ai.Stub{}
	r := gin.New()
	RegisterRoutes(r, Deps{
		Store:     s,
		Recorder:  ledger.NewRecorder(s),
		Stats:     ledger.NewStatsService(s, reader, time.Hour, 0),
		Reader:    reader,
		Auditor:   auditor,
		Redis:     nil,
		JWTSecret: testSecret,
	})
	return r, s, reader, auditor
}

func seedStats(t *testing.T, s *memory.Store) {
	t.Helper()
	if _, err := s.AppendTokenStats(context.Background(), "10000000", "2450000", "$0.0032", 42839); err != nil {
		t.Fatalf("AppendTokenStats returned error: %v", err)
	}
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func TestRecordBurnEndpoint(t *testing.T) {
	r, s, _, _ := newTestServer(t)
	seedStats(t, s)

	body := gin.H{"walletAddress": testAddr(1), "amount": "1000", "txHash": testHash(1)}
	w := doJSON(r, http.MethodPost, "/api/burns", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var burn domain.Burn
	decodeBody(t, w, &burn)
	if burn.Amount != "1000" || burn.TxHash != testHash(1) {
		t.Errorf("created burn = %+v", burn)
	}

	// Replaying the same tx hash is a conflict.
	w = doJSON(r, http.MethodPost, "/api/burns", body, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("replay status = %d, want 409", w.Code)
	}
	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["message"] != "Burn transaction already recorded" {
		t.Errorf("replay message = %q", resp["message"])
	}

	// The committed snapshot reflects exactly one burn.
	latest, err := s.LatestTokenStats(context.Background())
	if err != nil {
		t.Fatalf("LatestTokenStats returned error: %v", err)
	}
	if latest.TotalSupply != "9999000" || latest.BurnedTokens != "2451000" {
		t.Errorf("stats = %s/%s, want 9999000/2451000", latest.TotalSupply, latest.BurnedTokens)
	}
}

func TestRecordBurnEndpointValidation(t *testing.T) {
	r, s, _, _ := newTestServer(t)
	seedStats(t, s)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing fields", gin.H{"walletAddress": testAddr(1)}},
		{"bad address", gin.H{"walletAddress": "0xzz", "amount": "10", "txHash": testHash(1)}},
		{"zero amount", gin.H{"walletAddress": testAddr(1), "amount": "0", "txHash": testHash(1)}},
		{"decimal amount", gin.H{"walletAddress": testAddr(1), "amount": "2.5", "txHash": testHash(1)}},
		{"bad tx hash", gin.H{"walletAddress": testAddr(1), "amount": "10", "txHash": "0xbeef"}},
	}
	for _, tc := range cases {
		if w := doJSON(r, http.MethodPost, "/api/burns", tc.body, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400; body %s", tc.name, w.Code, w.Body.String())
		}
	}
}

func TestGetBurnsEndpoint(t *testing.T) {
	r, s, _, _ := newTestServer(t)
	seedStats(t, s)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		if _, err := s.CreateBurn(ctx, testAddr(10+i%2), "10", testHash(i)); err != nil {
			t.Fatalf("CreateBurn %d returned error: %v", i, err)
		}
	}

	w := doJSON(r, http.MethodGet, "/api/burns", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var burns []domain.Burn
	decodeBody(t, w, &burns)
	if len(burns) != 3 {
		t.Fatalf("len(burns) = %d, want 3", len(burns))
	}
	if burns[0].TxHash != testHash(3) {
		t.Errorf("first burn = %q, want newest %q", burns[0].TxHash, testHash(3))
	}

	// The wallet filter is case-insensitive: testAddr(11) ends in "b",
	// query it with the hex digit upper-cased.
	upper := "0x000000000000000000000000000000000000000B"
	w = doJSON(r, http.MethodGet, "/api/burns?wallet="+upper, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered status = %d, want 200", w.Code)
	}
	decodeBody(t, w, &burns)
	if len(burns) == 0 {
		t.Fatal("upper-cased filter matched no burns")
	}
	for _, b := range burns {
		if b.WalletAddress != testAddr(11) {
			t.Errorf("filtered burn wallet = %q, want %q", b.WalletAddress, testAddr(11))
		}
	}

	if w := doJSON(r, http.MethodGet, "/api/burns?wallet=0xnope", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad wallet status = %d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/burns?limit=-1", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("negative limit status = %d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/burns?offset=abc", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("non-integer offset status = %d, want 400", w.Code)
	}
}

func TestTransactionsEnvelope(t *testing.T) {
	r, s, _, _ := newTestServer(t)
	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		if _, err := s.CreateTransaction(ctx, testAddr(1), "100", domain.TxTypeTransfer, testHash(i), domain.TxStatusConfirmed); err != nil {
			t.Fatalf("CreateTransaction %d returned error: %v", i, err)
		}
	}

	w := doJSON(r, http.MethodGet, "/api/transactions?limit=10&offset=20", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Data       []domain.Transaction `json:"data"`
		Pagination Pagination           `json:"pagination"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Data) != 5 {
		t.Errorf("len(data) = %d, want 5", len(resp.Data))
	}
	if resp.Pagination.Total != 25 || resp.Pagination.Limit != 10 || resp.Pagination.Offset != 20 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
	if resp.Pagination.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", resp.Pagination.Remaining)
	}

	// Defaults apply when the parameters are absent.
	w = doJSON(r, http.MethodGet, "/api/transactions", nil, nil)
	decodeBody(t, w, &resp)
	if len(resp.Data) != 10 || resp.Pagination.Remaining != 15 {
		t.Errorf("default page: len = %d remaining = %d, want 10/15", len(resp.Data), resp.Pagination.Remaining)
	}
}

func TestCreateTransactionEndpoint(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	body := gin.H{"walletAddress": testAddr(1), "amount": "250", "type": "transfer", "txHash": testHash(1)}
	w := doJSON(r, http.MethodPost, "/api/transactions", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var tx domain.Transaction
	decodeBody(t, w, &tx)
	if tx.Status != domain.TxStatusConfirmed {
		t.Errorf("status defaulted to %q, want %q", tx.Status, domain.TxStatusConfirmed)
	}

	if w := doJSON(r, http.MethodPost, "/api/transactions", body, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", w.Code)
	}

	bad := gin.H{"walletAddress": testAddr(1), "amount": "250", "type": "mint", "txHash": testHash(2)}
	if w := doJSON(r, http.MethodPost, "/api/transactions", bad, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad type status = %d, want 400", w.Code)
	}
}

func TestTokenEndpoints(t *testing.T) {
	r, s, reader, _ := newTestServer(t)
	seedStats(t, s)

	w := doJSON(r, http.MethodGet, "/api/token", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("token status = %d, want 200", w.Code)
	}
	var info chain.TokenInfo
	decodeBody(t, w, &info)
	if info.Symbol != reader.Info.Symbol || info.TotalSupply != reader.Info.TotalSupply {
		t.Errorf("token info = %+v", info)
	}

	w = doJSON(r, http.MethodGet, "/api/token/stats", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", w.Code)
	}
	var stats domain.TokenStats
	decodeBody(t, w, &stats)
	if stats.TotalSupply != "10000000" || stats.BurnedTokens != "2450000" {
		t.Errorf("stats = %s/%s, want the fresh seeded snapshot", stats.TotalSupply, stats.BurnedTokens)
	}

	w = doJSON(r, http.MethodGet, "/api/wallet/"+testAddr(5)+"/balance", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("balance status = %d, want 200", w.Code)
	}
	var bal map[string]string
	decodeBody(t, w, &bal)
	if bal["balance"] != reader.Balance {
		t.Errorf("balance = %q, want %q", bal["balance"], reader.Balance)
	}

	if w := doJSON(r, http.MethodGet, "/api/wallet/0xshort/balance", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad address status = %d, want 400", w.Code)
	}
}

func TestAuditEndpoints(t *testing.T) {
	r, s, _, auditor := newTestServer(t)

	// Pricing requires a snapshot to derive from.
	w := doJSON(r, http.MethodGet, "/api/audit/pricing", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("pricing without stats status = %d, want 404", w.Code)
	}
	seedStats(t, s)
	w = doJSON(r, http.MethodGet, "/api/audit/pricing", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pricing status = %d, want 200", w.Code)
	}
	var priced struct {
		Pricing map[string]ledger.TierPrice `json:"pricing"`
	}
	decodeBody(t, w, &priced)
	if len(priced.Pricing) != 4 {
		t.Errorf("tier count = %d, want 4", len(priced.Pricing))
	}
	if got := priced.Pricing["basic"].BobPrice; got != 156250 {
		t.Errorf("basic BobPrice = %d, want 156250", got)
	}

	w = doJSON(r, http.MethodPost, "/api/audit/analyze", gin.H{"query": "is it safe"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("analyze without code status = %d, want 400", w.Code)
	}
	w = doJSON(r, http.MethodPost, "/api/audit/analyze", gin.H{"contractCode": "contract A {}"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var analysis ai.Analysis
	decodeBody(t, w, &analysis)
	if analysis.OverallRisk == "" || len(analysis.Vulnerabilities) == 0 {
		t.Errorf("analysis = %+v", analysis)
	}

	w = doJSON(r, http.MethodPost, "/api/audit/improve", gin.H{"contractCode": "contract A {}"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("improve without feedback status = %d, want 400", w.Code)
	}
	w = doJSON(r, http.MethodPost, "/api/audit/explain", gin.H{"contractCode": "contract A {}", "query": "what does it do"}, nil)
	if w.Code != http.StatusOK {
		t.Errorf("explain status = %d, want 200", w.Code)
	}

	// Upstream model failures surface as 500s.
	auditor.Fail = true
	w = doJSON(r, http.MethodPost, "/api/audit/analyze", gin.H{"contractCode": "contract A {}"}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("failed analyze status = %d, want 500", w.Code)
	}
}

func TestAuthAndWalletClaim(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	register := gin.H{"username": "Alice1", "password": "supersecret"}
	if w := doJSON(r, http.MethodPost, "/api/auth/register", register, nil); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	// Usernames are case-insensitive unique.
	if w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "alice1", "password": "supersecret"}, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "bad name!", "password": "supersecret"}, nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid username status = %d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "bob", "password": "short"}, nil); w.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d, want 400", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/api/auth/login", register, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var auth AuthResponse
	decodeBody(t, w, &auth)
	if auth.Token == "" {
		t.Fatal("login returned empty token")
	}
	if w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "Alice1", "password": "wrongpass99"}, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}

	// Claiming requires a valid token.
	claim := gin.H{"address": testAddr(9)}
	if w := doJSON(r, http.MethodPost, "/api/wallet/claim", claim, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated claim status = %d, want 401", w.Code)
	}
	headers := map[string]string{"Authorization": "Bearer " + auth.Token}
	if w := doJSON(r, http.MethodPost, "/api/wallet/claim", claim, headers); w.Code != http.StatusCreated {
		t.Errorf("claim status = %d, want 201", w.Code)
	}
	// Address records are immutable, so a second claim conflicts.
	if w := doJSON(r, http.MethodPost, "/api/wallet/claim", claim, headers); w.Code != http.StatusConflict {
		t.Errorf("re-claim status = %d, want 409", w.Code)
	}
}

func TestAdminTransactions(t *testing.T) {
	r, s, _, _ := newTestServer(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "root", "hash", "admin"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if _, err := s.CreateUser(ctx, "plain", "hash", "user"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if _, err := s.CreateTransaction(ctx, testAddr(1), "100", domain.TxTypeBurn, testHash(1), domain.TxStatusConfirmed); err != nil {
		t.Fatalf("CreateTransaction returned error: %v", err)
	}

	admin, err := s.UserByUsername(ctx, "root")
	if err != nil {
		t.Fatalf("UserByUsername returned error: %v", err)
	}
	adminToken, err := makeToken(admin.ID)
	if err != nil {
		t.Fatalf("makeToken returned error: %v", err)
	}
	plain, _ := s.UserByUsername(ctx, "plain")
	plainToken, err := makeToken(plain.ID)
	if err != nil {
		t.Fatalf("makeToken returned error: %v", err)
	}

	if w := doJSON(r, http.MethodGet, "/api/admin/transactions", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/admin/transactions", nil, map[string]string{"Authorization": "Bearer " + plainToken}); w.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/admin/transactions", nil, map[string]string{"Authorization": "Bearer " + adminToken})
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data       []domain.Transaction `json:"data"`
		Pagination Pagination           `json:"pagination"`
		Cached     bool                 `json:"cached"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Data) != 1 || resp.Pagination.Total != 1 {
		t.Errorf("admin listing = %d records, total %d, want 1/1", len(resp.Data), resp.Pagination.Total)
	}
	if resp.Cached {
		t.Error("cached = true with caching disabled")
	}
}
