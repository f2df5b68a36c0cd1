// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
	"github.com/segmently/segmently-backend/internal/rules"
	"github.com/segmently/segmently-backend/internal/service"
	"github.com/segmently/segmently-backend/internal/validation"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	AudienceService *service.AudienceService
}

// CreateAudience handles POST /campaigns: validate, resolve, persist,
// dispatch. Responds 201 with the persisted record.
func (c *CampaignController) CreateAudience(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	req, err := validation.ValidateCreateAudience(body)
	if err != nil {
		log.Println("⚠️ Create audience rejected:", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	set := rules.RuleSet{Rules: req.Rules, LogicalOperator: req.LogicalOperator}
	record, err := c.CampaignService.CreateCampaign(set, req.Message)
	if err != nil {
		log.Println("⚠️ Create audience failed:", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ListCampaigns handles GET /campaigns, most recent first.
func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	records, err := c.CampaignService.ListCampaigns()
	if err != nil {
		log.Println("⚠️ List campaigns failed:", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// CheckAudienceSize handles POST /campaigns/audience-size. No persistence,
// no dispatch.
func (c *CampaignController) CheckAudienceSize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	req, err := validation.ValidatePreview(body)
	if err != nil {
		log.Println("⚠️ Audience size check rejected:", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	set := rules.RuleSet{Rules: req.Rules, LogicalOperator: req.LogicalOperator}
	size, err := c.AudienceService.PreviewSize(set)
	if err != nil {
		log.Println("⚠️ Audience size check failed:", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"audienceSize": size})
}

// statusFor splits client-caused failures (validation, compilation,
// coercion) from store failures.
func statusFor(err error) int {
	var storeErr *appErrors.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
