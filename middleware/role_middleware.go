package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	authutils "eia-backend/lib/utils/auth-utils"
	"eia-backend/models"
	apimodels "eia-backend/models/api"
)

// GetUserRole returns the role recorded in the access token.
func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if claims == nil {
		return ""
	}
	role, ok := claims["role"].(string)
	if !ok {
		return ""
	}
	return models.UserRole(role)
}

// GetPrincipalID returns the identifier of the authenticated principal.
func GetPrincipalID(ctx *fiber.Ctx) int64 {
	claims := authutils.GetClaims(ctx)
	if claims == nil {
		return 0
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if claims == nil {
		return ""
	}
	name, _ := claims["name"].(string)
	return name
}

func ReviewerRoleRequired() fiber.Handler {
	return roleRequired(models.ReviewerRole)
}

func SponsorRoleRequired() fiber.Handler {
	return roleRequired(models.SponsorRole)
}

func ApplicantRoleRequired() fiber.Handler {
	return roleRequired(models.ApplicantRole)
}

func roleRequired(role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetUserRole(ctx) != role {
			return ctx.Status(fiber.StatusForbidden).
				JSON(apimodels.NewError("insufficient permissions"))
		}
		return ctx.Next()
	}
}
