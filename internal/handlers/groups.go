package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/groupshare/backend/internal/middleware"
	"github.com/groupshare/backend/internal/repository"
	"github.com/groupshare/backend/internal/services"
	"github.com/groupshare/backend/pkg/logger"
	"github.com/groupshare/backend/pkg/utils"
)

type GroupsHandler struct {
	Service *services.GroupService
}

func NewGroupsHandler(service *services.GroupService) *GroupsHandler {
	return &GroupsHandler{Service: service}
}

type createGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	deviceID := middleware.GetDeviceID(c)

	detail, err := h.Service.CreateGroup(c.UserContext(), req.Name, req.Description, deviceID)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return utils.Error(c, fiber.StatusBadRequest, validationErr.Message)
		case errors.Is(err, repository.ErrTimeout):
			return utils.Error(c, fiber.StatusGatewayTimeout, "storage timeout")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "failed creating group")
		}
	}

	if deviceID != "" {
		logger.InfoWithDevice(deviceID, "group_created", map[string]interface{}{
			"group_id":   detail.ID,
			"group_name": detail.Name,
		})
	} else {
		logger.Info("group_created", map[string]interface{}{
			"group_id":   detail.ID,
			"group_name": detail.Name,
		})
	}

	return utils.Success(c, fiber.StatusCreated, detail)
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	groups, err := h.Service.ListGroups(c.UserContext())
	if err != nil {
		if errors.Is(err, repository.ErrTimeout) {
			return utils.Error(c, fiber.StatusGatewayTimeout, "storage timeout")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing groups")
	}

	return utils.Success(c, fiber.StatusOK, groups)
}

func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	detail, err := h.Service.GetGroup(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return utils.Error(c, fiber.StatusNotFound, "group not found")
		case errors.Is(err, repository.ErrTimeout):
			return utils.Error(c, fiber.StatusGatewayTimeout, "storage timeout")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "failed loading group")
		}
	}

	return utils.Success(c, fiber.StatusOK, detail)
}

func (h *GroupsHandler) Permissions(c *fiber.Ctx) error {
	status, err := h.Service.QueryPermissions(c.UserContext(), c.Params("id"), middleware.GetDeviceID(c))
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return utils.Error(c, fiber.StatusBadRequest, validationErr.Message)
		case errors.Is(err, services.ErrUnknownRole):
			// Data-integrity violation: fail closed, never guess permissions.
			return utils.Error(c, fiber.StatusInternalServerError, "invalid membership record")
		case errors.Is(err, repository.ErrTimeout):
			return utils.Error(c, fiber.StatusGatewayTimeout, "storage timeout")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "failed querying permissions")
		}
	}

	return utils.Success(c, fiber.StatusOK, status)
}

type joinGroupRequest struct {
	InviteCode string `json:"inviteCode"`
	DeviceID   string `json:"deviceID"`
}

func (h *GroupsHandler) Join(c *fiber.Ctx) error {
	var req joinGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = middleware.GetDeviceID(c)
	}

	membership, err := h.Service.JoinGroup(c.UserContext(), req.InviteCode, deviceID)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return utils.Error(c, fiber.StatusBadRequest, validationErr.Message)
		case errors.Is(err, repository.ErrNotFound):
			return utils.Error(c, fiber.StatusNotFound, "invite code not found")
		case errors.Is(err, repository.ErrConflict):
			return utils.Error(c, fiber.StatusConflict, "device is already a member")
		case errors.Is(err, repository.ErrTimeout):
			return utils.Error(c, fiber.StatusGatewayTimeout, "storage timeout")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "failed joining group")
		}
	}

	logger.InfoWithDevice(membership.DeviceID, "group_joined", map[string]interface{}{
		"group_id": membership.GroupID,
	})

	return utils.Success(c, fiber.StatusCreated, membership)
}
