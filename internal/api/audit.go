package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes

	"burn_tracker/internal/ai"     // Audit collaborator
	"burn_tracker/internal/ledger" // Pricing derivation
	"burn_tracker/internal/store"  // Ledger store interface

	"github.com/gin-gonic/gin" // Gin web framework
)

// AnalyzeRequest carries contract source and an optional focusing question
type AnalyzeRequest struct {
	ContractCode string `json:"contractCode"` // Contract source to audit
	Query        string `json:"query"`        // Optional question
}

// ImproveRequest carries contract source and improvement feedback
type ImproveRequest struct {
	ContractCode string `json:"contractCode"` // Contract source to improve
	Feedback     string `json:"feedback"`     // Requested improvement
}

// AnalyzeContractHandler runs a model-backed audit over contract source
func AnalyzeContractHandler(auditor ai.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.ContractCode == "" {
			// Contract code is the only required field
			c.JSON(http.StatusBadRequest, gin.H{"message": "Contract code is required"})
			return
		}
		analysis, err := auditor.Analyze(c.Request.Context(), req.ContractCode, req.Query)
		if err != nil {
			writeError(c, err, "Error analyzing smart contract")
			return
		}
		c.JSON(http.StatusOK, analysis) // Return the structured analysis
	}
}

// ImproveContractHandler rewrites contract source per feedback
func ImproveContractHandler(auditor ai.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ImproveRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.ContractCode == "" || req.Feedback == "" {
			// Both fields are required
			c.JSON(http.StatusBadRequest, gin.H{"message": "Contract code and feedback are required"})
			return
		}
		improved, err := auditor.Improve(c.Request.Context(), req.ContractCode, req.Feedback)
		if err != nil {
			writeError(c, err, "Error improving smart contract")
			return
		}
		c.JSON(http.StatusOK, gin.H{"improvedCode": improved})
	}
}

// ExplainContractHandler answers a question about contract source
func ExplainContractHandler(auditor ai.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest // Same shape as analyze, query required
		if err := c.ShouldBindJSON(&req); err != nil || req.ContractCode == "" || req.Query == "" {
			// Both fields are required
			c.JSON(http.StatusBadRequest, gin.H{"message": "Contract code and query are required"})
			return
		}
		explanation, err := auditor.Explain(c.Request.Context(), req.ContractCode, req.Query)
		if err != nil {
			writeError(c, err, "Error explaining smart contract")
			return
		}
		c.JSON(http.StatusOK, gin.H{"explanation": explanation})
	}
}

// AuditPricingHandler derives audit tier prices from the latest snapshot
func AuditPricingHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.LatestTokenStats(c.Request.Context()) // Latest snapshot
		if err != nil {
			// No snapshot means pricing cannot be derived yet
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Token stats not available"})
				return
			}
			writeError(c, err, "Error calculating audit pricing")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pricing":     ledger.AuditPricing(stats),
			"lastUpdated": stats.LastUpdated,
		})
	}
}
