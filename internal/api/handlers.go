package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	"github.com/ellavondegurechaff/progression/internal/domain/orchestrator"
	"github.com/ellavondegurechaff/progression/internal/domain/points"
)

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Runner starts one badge recalculation; ok is false when a run is already
// in flight.
type Runner interface {
	RunOnce(ctx context.Context) (summary orchestrator.Summary, ok bool)
}

// Server holds everything the handlers reach into.
type Server struct {
	Points  points.Service
	Badges  badges.Service
	Runner  Runner
	DB      Pinger
	Version string
	Commit  string
}

type batchGrantRequest struct {
	Grants []points.GrantRequest `json:"grants"`
}

type batchGrantResult struct {
	UserID              string `json:"user_id"`
	Success             bool   `json:"success"`
	NewCumulativePoints int    `json:"new_cumulative_points"`
	NewLevel            int    `json:"new_level"`
	Error               string `json:"error,omitempty"`
}

type levelAckRequest struct {
	Level int `json:"level"`
}

type badgeAckRequest struct {
	IDs []int64 `json:"ids"`
}

func HealthCheck(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := s.DB.Ping(ctx); err != nil {
			slog.Error("Health check failed",
				slog.String("type", "api"),
				slog.Any("error", err),
			)
			return SendServiceUnavailable(c, "database unreachable")
		}
		return SendSuccess(c, fiber.Map{
			"status":  "healthy",
			"version": s.Version,
			"commit":  s.Commit,
		}, "Health check successful")
	}
}

func GrantPoints(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req points.GrantRequest
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "invalid request body", nil)
		}

		state, err := s.Points.GrantPoints(c.UserContext(), req)
		if err != nil {
			return SendDomainError(c, err)
		}
		return SendCreated(c, state, "Points granted")
	}
}

func GrantPointsBatch(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req batchGrantRequest
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "invalid request body", nil)
		}
		if len(req.Grants) > config.MaxBatchRequests {
			return SendBadRequest(c, fmt.Sprintf("at most %d grants per batch", config.MaxBatchRequests), nil)
		}

		results, err := s.Points.GrantPointsBatch(c.UserContext(), req.Grants)
		if err != nil {
			return SendDomainError(c, err)
		}

		out := make([]batchGrantResult, len(results))
		failed := 0
		for i, r := range results {
			out[i] = batchGrantResult{
				UserID:              r.UserID,
				Success:             r.Success,
				NewCumulativePoints: r.NewCumulativePoints,
				NewLevel:            r.NewLevel,
			}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
			if !r.Success {
				failed++
			}
		}
		return SendSuccess(c, out, fmt.Sprintf("Batch processed, %d of %d users failed", failed, len(out)))
	}
}

func Reconcile(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := s.Points.Reconcile(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return SendDomainError(c, err)
		}
		return SendSuccess(c, state, "Level state reconciled")
	}
}

func GetProgress(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		progress, err := s.Points.GetProgress(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return SendDomainError(c, err)
		}
		return SendSuccess(c, progress, "")
	}
}

func History(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", points.DefaultHistoryLimit)
		if limit < 1 {
			return SendBadRequest(c, "limit must be positive", nil)
		}

		txs, err := s.Points.History(c.UserContext(), c.Params("user_id"), limit)
		if err != nil {
			return SendDomainError(c, err)
		}
		return SendSuccess(c, txs, "")
	}
}

func AcknowledgeLevel(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req levelAckRequest
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "invalid request body", nil)
		}

		if err := s.Points.AcknowledgeLevel(c.UserContext(), c.Params("user_id"), req.Level); err != nil {
			return SendDomainError(c, err)
		}
		return SendSuccess(c, fiber.Map{"level": req.Level}, "Level acknowledged")
	}
}

func ListBadges(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.Badges.ListBadges(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return SendDomainError(c, err)
		}
		if list == nil {
			list = []*badges.UserBadge{}
		}
		return SendSuccess(c, list, "")
	}
}

func PendingBadges(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.Badges.PendingNotifications(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return SendDomainError(c, err)
		}
		if list == nil {
			list = []*badges.UserBadge{}
		}
		return SendSuccess(c, list, "")
	}
}

func AcknowledgeBadges(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req badgeAckRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return SendBadRequest(c, "invalid request body", nil)
			}
		}

		n, err := s.Badges.MarkNotified(c.UserContext(), c.Params("user_id"), req.IDs)
		if err != nil {
			return SendDomainError(c, err)
		}
		return SendSuccess(c, fiber.Map{"marked": n}, "Badges acknowledged")
	}
}

func RecalculateBadges(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, ok := s.Runner.RunOnce(c.UserContext())
		if !ok {
			return SendConflict(c, "a badge recalculation is already running")
		}

		message := "Badge recalculation completed"
		if !summary.Success {
			message = "Badge recalculation completed with failures"
		}
		return SendSuccess(c, summary, message)
	}
}
