package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ezcrow.dev/crowdfund/internal/api/generated"
	"ezcrow.dev/crowdfund/internal/campaign"
)

// Initialize handles POST /contract/initialize.
func (s *Server) Initialize(c *gin.Context) {
	var req initializeRequest
	if !bind(c, &req) {
		return
	}
	owner, ok := address(c, "owner", req.Owner)
	if !ok {
		return
	}
	if err := s.contract.Initialize(c.Request.Context(), signers(c), owner, *req.Goal, *req.Deadline, req.Category); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"initialized": true,
		"contract":    s.contract.ContractAddress(),
		"token":       s.contract.TokenAddress(),
	})
}

// Donate handles POST /contract/donations.
func (s *Server) Donate(c *gin.Context) {
	var req donateRequest
	if !bind(c, &req) {
		return
	}
	donor, ok := address(c, "donor", req.Donor)
	if !ok {
		return
	}
	total, err := s.contract.Donate(c.Request.Context(), signers(c), donor, *req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"donor":        donor,
		"amount":       *req.Amount,
		"total_raised": total,
	})
}

// PostUpdate handles POST /contract/updates.
func (s *Server) PostUpdate(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	owner, ok := address(c, "owner", req.Owner)
	if !ok {
		return
	}
	n, err := s.contract.PostUpdate(c.Request.Context(), signers(c), owner, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// AddComment handles POST /contract/comments.
func (s *Server) AddComment(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	commenter, ok := address(c, "commenter", req.Commenter)
	if !ok {
		return
	}
	n, err := s.contract.AddComment(c.Request.Context(), signers(c), commenter, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// AddMilestone handles POST /contract/milestones.
func (s *Server) AddMilestone(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	owner, ok := address(c, "owner", req.Owner)
	if !ok {
		return
	}
	n, err := s.contract.AddMilestone(c.Request.Context(), signers(c), owner, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// GetIsInitialized handles GET /contract/initialized.
func (s *Server) GetIsInitialized(c *gin.Context) {
	ok, err := s.contract.IsInitialized(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"initialized": ok})
}

// GetTotalRaised handles GET /contract/total-raised.
func (s *Server) GetTotalRaised(c *gin.Context) {
	total, err := s.contract.TotalRaised(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_raised": total})
}

// GetDonation handles GET /contract/donations/{address}.
func (s *Server) GetDonation(c *gin.Context, raw generated.AddressPath) {
	donor, ok := address(c, "address", raw)
	if !ok {
		return
	}
	amt, err := s.contract.Donation(c.Request.Context(), donor)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donor": donor, "amount": amt})
}

// GetCategory handles GET /contract/category.
func (s *Server) GetCategory(c *gin.Context) {
	category, err := s.contract.Category(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// GetUpdates handles GET /contract/updates.
func (s *Server) GetUpdates(c *gin.Context) {
	updates, err := s.contract.Updates(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

// GetUpdateCount handles GET /contract/updates/count.
func (s *Server) GetUpdateCount(c *gin.Context) {
	n, err := s.contract.UpdateCount(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// GetComments handles GET /contract/comments.
func (s *Server) GetComments(c *gin.Context) {
	comments, err := s.contract.Comments(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// GetCommentCount handles GET /contract/comments/count.
func (s *Server) GetCommentCount(c *gin.Context) {
	n, err := s.contract.CommentCount(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// GetMilestones handles GET /contract/milestones.
func (s *Server) GetMilestones(c *gin.Context) {
	milestones, err := s.contract.Milestones(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// GetProgressPercentage handles GET /contract/progress.
func (s *Server) GetProgressPercentage(c *gin.Context) {
	pct, err := s.contract.ProgressPercentage(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"percentage": pct})
}

// IsCampaignActive handles GET /contract/active.
func (s *Server) IsCampaignActive(c *gin.Context) {
	active, at, err := s.contract.IsActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "ledger_time": at})
}

// GetCampaignStats handles GET /contract/stats.
func (s *Server) GetCampaignStats(c *gin.Context) {
	stats, err := s.contract.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetDashboard handles GET /contract/dashboard.
func (s *Server) GetDashboard(c *gin.Context) {
	d, err := s.contract.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetBalance handles GET /token/balances/{address}.
func (s *Server) GetBalance(c *gin.Context, raw generated.AddressPath) {
	addr, ok := address(c, "address", raw)
	if !ok {
		return
	}
	bal, err := s.contract.Balance(c.Request.Context(), addr)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, balanceResponse(addr, s.contract.TokenAddress(), bal))
}

func balanceResponse(addr, token campaign.Address, bal interface{ String() string }) gin.H {
	return gin.H{"address": addr, "token": token, "balance": bal.String()}
}
