package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ezcrow.dev/crowdfund/internal/api/middleware"
	"ezcrow.dev/crowdfund/internal/campaign"
	"ezcrow.dev/crowdfund/internal/host"
	"ezcrow.dev/crowdfund/internal/pkg/amount"
	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
)

type initializeRequest struct {
	Owner    string      `json:"owner" binding:"required"`
	Goal     *amount.Int `json:"goal" binding:"required"`
	Deadline *uint64     `json:"deadline" binding:"required"`
	Category string      `json:"category"`
}

type donateRequest struct {
	Donor  string      `json:"donor" binding:"required"`
	Amount *amount.Int `json:"amount" binding:"required"`
}

type textRequest struct {
	Owner     string `json:"owner"`
	Commenter string `json:"commenter"`
	Text      string `json:"text"`
}

type mintRequest struct {
	To     string      `json:"to" binding:"required"`
	Amount *amount.Int `json:"amount" binding:"required"`
}

func init() {
	// Report json field names in binding errors.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bind decodes the JSON body into req, attaching a 400 on failure. Binding
// tag violations are listed per field.
func bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationError, "request body failed validation").
			WithFieldErrors(fieldErrors(verrs)).WithCause(err))
		return false
	}
	_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body").
		WithParams(map[string]interface{}{"reason": err.Error()}).WithCause(err))
	return false
}

func fieldErrors(verrs validator.ValidationErrors) []apperrors.FieldError {
	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{
			Field:   fe.Field(),
			Code:    fe.Tag(),
			Message: fe.Error(),
		})
	}
	return out
}

// address parses raw as an account or contract address named field.
func address(c *gin.Context, field, raw string) (campaign.Address, bool) {
	addr, err := campaign.ParseAddress(raw)
	if err != nil {
		_ = c.Error(apperrors.ErrInvalidAddressf(field))
		return "", false
	}
	return addr, true
}

// signers returns the signer set carried by the request's token. Addresses
// that do not parse are dropped: they can never match a contract address.
func signers(c *gin.Context) host.SignerSet {
	raw := middleware.GetSigners(c.Request.Context())
	addrs := make([]campaign.Address, 0, len(raw))
	for _, s := range raw {
		if addr, err := campaign.ParseAddress(s); err == nil {
			addrs = append(addrs, addr)
		}
	}
	return host.NewSignerSet(addrs...)
}
