package controller

import (
	"github.com/benbeisheim/chessmatch/internal/middleware"
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type MatchController struct {
	matchService *service.MatchService
}

func NewMatchController(matchService *service.MatchService) *MatchController {
	return &MatchController{matchService: matchService}
}

// Register mounts the REST routes on router.
func (mc *MatchController) Register(router fiber.Router) {
	matches := router.Group("/match")
	matches.Post("/", mc.CreateMatch)
	matches.Get("/:matchId", middleware.EnsureMatchID(), mc.GetMatchState)
	matches.Delete("/:matchId", middleware.EnsureMatchID(), mc.DeleteMatch)
	matches.Get("/:matchId/moves/:square", middleware.EnsureMatchID(), mc.LegalMoves)
	matches.Post("/:matchId/move", middleware.EnsureMatchID(), mc.PerformMove)
	matches.Post("/:matchId/promotion", middleware.EnsureMatchID(), mc.ResolvePromotion)
}

func (mc *MatchController) CreateMatch(c *fiber.Ctx) error {
	matchID := mc.matchService.CreateMatch()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"matchId": matchID,
	})
}

func (mc *MatchController) GetMatchState(c *fiber.Ctx) error {
	state, err := mc.matchService.GetMatchState(middleware.MatchID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (mc *MatchController) DeleteMatch(c *fiber.Ctx) error {
	if err := mc.matchService.DeleteMatch(middleware.MatchID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (mc *MatchController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := mc.matchService.LegalMoves(middleware.MatchID(c), square)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(ws.LegalMovesReply{Square: square, Moves: moves})
}

func (mc *MatchController) PerformMove(c *fiber.Ctx) error {
	var body ws.MovePayload
	if err := c.BodyParser(&body); err != nil {
		log.Debugf("bad move body: %v", err)
		return badRequest(c, "invalid move body")
	}

	result, err := mc.matchService.HandleMove(middleware.MatchID(c), body.From, body.To, body.Promotion)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(result)
}

func (mc *MatchController) ResolvePromotion(c *fiber.Ctx) error {
	var body ws.PromotePayload
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid promotion body")
	}

	state, err := mc.matchService.HandlePromotion(middleware.MatchID(c), body.Type)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}
