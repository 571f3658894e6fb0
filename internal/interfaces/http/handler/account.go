package handler

import (
	"github.com/gin-gonic/gin"

	accountapp "github.com/ljwebdevelopment/booth-rent-pro/internal/application/account"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/dto"
)

// AccountHandler handles business profile and invite API endpoints
type AccountHandler struct {
	BaseHandler
	profileService *accountapp.ProfileService
	inviteService  *accountapp.InviteService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(profileService *accountapp.ProfileService, inviteService *accountapp.InviteService) *AccountHandler {
	return &AccountHandler{
		profileService: profileService,
		inviteService:  inviteService,
	}
}

// UpdateProfileRequest represents a request to save the business profile
type UpdateProfileRequest struct {
	BusinessName string  `json:"business_name" binding:"required,min=1,max=200"`
	Phone        string  `json:"phone" binding:"max=50"`
	Address1     string  `json:"address1" binding:"max=200"`
	Address2     string  `json:"address2" binding:"max=200"`
	City         string  `json:"city" binding:"max=100"`
	State        string  `json:"state" binding:"max=2"`
	Zip          string  `json:"zip" binding:"max=10"`
	LogoURL      *string `json:"logo_url" binding:"omitempty,url"`
}

// CreateInviteRequest represents a request to invite a team member
type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email,max=200"`
}

// GetProfile returns the account's business profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpsertProfile creates or replaces the account's business profile
func (h *AccountHandler) UpsertProfile(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), accountID, accountapp.UpdateProfileRequest{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Address1:     req.Address1,
		Address2:     req.Address2,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// CreateInvite invites a team member by email
func (h *AccountHandler) CreateInvite(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invite, err := h.inviteService.Create(c.Request.Context(), accountID, req.Email, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invite)
}

// ListInvites lists the account's invites
func (h *AccountHandler) ListInvites(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invites, err := h.inviteService.List(c.Request.Context(), accountID, toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invites)
}

// RevokeInvite cancels a pending invite
func (h *AccountHandler) RevokeInvite(c *gin.Context) {
	accountID, inviteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.inviteService.Revoke(c.Request.Context(), accountID, inviteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AcceptInvite marks a pending invite as accepted
func (h *AccountHandler) AcceptInvite(c *gin.Context) {
	accountID, inviteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.inviteService.Accept(c.Request.Context(), accountID, inviteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
