package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/auth"
	"github.com/spec-kit/wallet-service/internal/domain"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

func requireProfile(c *fiber.Ctx) (*domain.Profile, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.Profile, nil
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseAmount(field, val string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(field+" must be a decimal number", nil)
	}
	return amount, nil
}
