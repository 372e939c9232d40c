package api

import (
	"burn_tracker/internal/ai"         // Audit collaborator
	"burn_tracker/internal/chain"      // Chain reader collaborator
	"burn_tracker/internal/ledger"     // Pipeline and refresh policy
	"burn_tracker/internal/middleware" // JWT and admin middleware
	"burn_tracker/internal/store"      // Ledger store interface

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps holds everything the route handlers need. Handlers receive their
// dependencies explicitly so tests can wire fresh instances per test.
type Deps struct {
	Store     store.Store          // Ledger store
	Recorder  *ledger.Recorder     // Burn-recording pipeline
	Stats     *ledger.StatsService // Stats refresh policy
	Reader    chain.Reader         // Chain reader
	Auditor   ai.Auditor           // Contract audit collaborator
	Redis     *redis.Client        // Optional cache client, nil disables caching
	JWTSecret string               // JWT signing secret
}

// RegisterRoutes attaches all API routes to the router
func RegisterRoutes(r *gin.Engine, d Deps) {
	// Auth routes
	r.POST("/api/auth/register", RegisterHandler(d.Store)) // Registration endpoint
	r.POST("/api/auth/login", LoginHandler(d.Store, d.JWTSecret))

	// Token routes
	r.GET("/api/token", TokenInfoHandler(d.Reader, d.Redis))              // Token info endpoint
	r.GET("/api/token/stats", TokenStatsHandler(d.Stats))                 // Current statistics snapshot
	r.GET("/api/wallet/:address/balance", WalletBalanceHandler(d.Reader, d.Redis)) // On-chain balance

	// Burn routes
	r.GET("/api/burns", GetBurnsHandler(d.Store))       // Burn history
	r.POST("/api/burns", RecordBurnHandler(d.Recorder)) // Record a reported burn

	// Transaction routes
	r.GET("/api/transactions", GetTransactionsHandler(d.Store))     // Paginated ledger
	r.POST("/api/transactions", CreateTransactionHandler(d.Store)) // Record a transaction

	// Audit routes
	r.POST("/api/audit/analyze", AnalyzeContractHandler(d.Auditor)) // Model-backed analysis
	r.POST("/api/audit/improve", ImproveContractHandler(d.Auditor)) // Model-backed rewrite
	r.POST("/api/audit/explain", ExplainContractHandler(d.Auditor)) // Model-backed explanation
	r.GET("/api/audit/pricing", AuditPricingHandler(d.Store))       // Tier pricing from the snapshot

	// Wallet claim (protected by JWT)
	claimGroup := r.Group("/api/wallet")
	claimGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	claimGroup.POST("/claim", ClaimWalletHandler(d.Store)) // Link a wallet to the caller

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Store))
	adminGroup.GET("/transactions", AdminListTransactionsHandler(d.Store, d.Redis)) // Full ledger listing
}
