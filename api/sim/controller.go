package simapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/micromouse-api/api/identity"
	"github.com/beka-birhanu/micromouse-api/service"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/beka-birhanu/micromouse-api/simulation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SimulationController manages simulation runs over HTTP: creation,
// stepping, replay scrubbing, and the archived leaderboard views.
type SimulationController struct {
	manager i.SimulationManager
}

// NewSimulationController initializes a SimulationController.
func NewSimulationController(sm i.SimulationManager) (*SimulationController, error) {
	return &SimulationController{
		manager: sm,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SimulationController) RegisterPublic(route *gin.RouterGroup) {
	simulations := route.Group("/simulations")
	{
		simulations.GET("/:ID", sc.snapshot)
	}
	route.GET("/leaderboard", sc.leaderboard)
	route.GET("/records", sc.records)
}

// RegisterProtected registers protected routes.
func (sc *SimulationController) RegisterProtected(route *gin.RouterGroup) {
	simulations := route.Group("/simulations")
	{
		simulations.POST("/", sc.create)
		simulations.POST("/:ID/tick", sc.tick)
		simulations.POST("/:ID/forward", sc.forward)
		simulations.POST("/:ID/backward", sc.backward)
		simulations.POST("/:ID/reset", sc.reset)
		simulations.POST("/:ID/solve", sc.solve)
		simulations.DELETE("/:ID", sc.remove)
	}
}

// create handles run creation requests.
func (sc *SimulationController) create(ctx *gin.Context) {
	ownerID, ok := sc.owner(ctx)
	if !ok {
		return
	}

	var request CreateRunRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, snap, err := sc.manager.Create(ownerID, simulation.Config{
		Width:  request.Width,
		Height: request.Height,
		Seed:   request.Seed,
	})
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newRunResponse(id, snap))
}

// snapshot retrieves the current state of a live run.
func (sc *SimulationController) snapshot(ctx *gin.Context) {
	id, ok := sc.runID(ctx)
	if !ok {
		return
	}

	snap, err := sc.manager.Snapshot(id)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(id, snap))
}

// tick advances a run by the requested number of work units.
func (sc *SimulationController) tick(ctx *gin.Context) {
	ownerID, ok := sc.owner(ctx)
	if !ok {
		return
	}
	id, ok := sc.runID(ctx)
	if !ok {
		return
	}

	var request TickRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := sc.manager.Tick(ownerID, id, request.Steps)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(id, snap))
}

func (sc *SimulationController) forward(ctx *gin.Context)  { sc.control(ctx, sc.manager.Forward) }
func (sc *SimulationController) backward(ctx *gin.Context) { sc.control(ctx, sc.manager.Backward) }
func (sc *SimulationController) reset(ctx *gin.Context)    { sc.control(ctx, sc.manager.Reset) }
func (sc *SimulationController) solve(ctx *gin.Context)    { sc.control(ctx, sc.manager.Solve) }

// remove evicts a live run.
func (sc *SimulationController) remove(ctx *gin.Context) {
	ownerID, ok := sc.owner(ctx)
	if !ok {
		return
	}
	id, ok := sc.runID(ctx)
	if !ok {
		return
	}

	if err := sc.manager.Delete(ownerID, id); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// leaderboard retrieves the best archived run costs, lowest first.
func (sc *SimulationController) leaderboard(ctx *gin.Context) {
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	entries, err := sc.manager.Leaderboard(timeoutCtx, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	scores := make([]*ScoreResponse, 0, len(entries))
	for _, entry := range entries {
		scores = append(scores, &ScoreResponse{RunID: entry.Member, Cost: entry.Score})
	}
	ctx.JSON(http.StatusOK, scores)
}

// records retrieves recently archived runs, newest first.
func (sc *SimulationController) records(ctx *gin.Context) {
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	archived, err := sc.manager.Records(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading records"})
		return
	}

	records := make([]*RecordResponse, 0, len(archived))
	for _, record := range archived {
		records = append(records, newRecordResponse(record))
	}
	ctx.JSON(http.StatusOK, records)
}

// control runs one lifecycle action against the addressed run and renders
// the refreshed snapshot.
func (sc *SimulationController) control(ctx *gin.Context, action func(owner, id uuid.UUID) (simulation.Snapshot, error)) {
	ownerID, ok := sc.owner(ctx)
	if !ok {
		return
	}
	id, ok := sc.runID(ctx)
	if !ok {
		return
	}

	snap, err := action(ownerID, id)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(id, snap))
}

// owner extracts the authenticated user id from the claims the
// authorization middleware attached to the context.
func (sc *SimulationController) owner(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get(identity.ContextUserClaims)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing user claims"})
		return uuid.Nil, false
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "malformed user claims"})
		return uuid.Nil, false
	}

	idStr, ok := claims["userID"].(string)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "malformed user claims"})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "malformed user claims"})
		return uuid.Nil, false
	}

	return id, true
}

// runID parses the run id from the request path.
func (sc *SimulationController) runID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return uuid.Nil, false
	}
	return id, true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotRunOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTooManyRuns):
		return http.StatusTooManyRequests
	case errors.Is(err, simulation.ErrNotReplayable):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
