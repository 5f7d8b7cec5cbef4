package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// StatsHandler defines the interface for handling statistics endpoints
type StatsHandler interface {
	Top(ctx *gin.Context)
	MyStats(ctx *gin.Context)
	Usage(ctx *gin.Context)
	Chart(ctx *gin.Context)
	Days(ctx *gin.Context)
	Summary(ctx *gin.Context)
	ResourceStats(ctx *gin.Context)
}

type statsHandler struct {
	statsService stats.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandler{statsService: statsService}
}

// Top handles the GET request for the most viewed or downloaded resources
// @Summary Resource ranking
// @Tags Statistics
// @Produce json
// @Param action query string false "Action code or label, view by default"
// @Param limit query int false "Number of entries"
// @Success 200 {array} TopEntryResponse
// @Failure 400 {object} ErrorResponse
// @Router /stats/top/ [get]
func (handler *statsHandler) Top(ctx *gin.Context) {
	action, err := stats.ParseAction(ctx.DefaultQuery("action", string(stats.ActionView)))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	entries, err := handler.statsService.Top(ctx, action, strutil.ConvertToInt(ctx.Query("limit")))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not compute ranking")
		return
	}

	response := []TopEntryResponse{}
	for _, entry := range entries {
		response = append(response, TopEntryResponse{
			ResourceID:   entry.ResourceID,
			ResourceName: entry.ResourceName,
			Count:        entry.Count,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// MyStats returns the statistics rows of the calling user
func (handler *statsHandler) MyStats(ctx *gin.Context) {
	rows, err := handler.statsService.UserStats(ctx, userID(ctx))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not load user statistics")
		return
	}
	ctx.JSON(http.StatusOK, newLRStatResponses(rows))
}

// Usage returns metadata element usage, most used first
func (handler *statsHandler) Usage(ctx *gin.Context) {
	usage, err := handler.statsService.Usage(ctx, strutil.ConvertToInt(ctx.Query("limit")))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not load element usage")
		return
	}

	response := []UsageResponse{}
	for _, u := range usage {
		response = append(response, UsageResponse{Element: u.Element, Parent: u.Parent, Count: u.Count})
	}
	ctx.JSON(http.StatusOK, response)
}

// Chart returns daily counts of the action named by the kind path parameter.
// The optional since query parameter is a YYYY-MM-DD date.
func (handler *statsHandler) Chart(ctx *gin.Context) {
	action, err := stats.ParseAction(ctx.Param("kind"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	var since time.Time
	if raw := ctx.Query("since"); raw != "" {
		since, err = parseTime(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
	}

	days, err := handler.statsService.Daily(ctx, action, since)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not load chart data")
		return
	}

	response := ChartResponse{Action: action.Label(), Days: []DayCountResponse{}}
	for _, d := range days {
		response.Days = append(response.Days, DayCountResponse{Day: d.Day, Count: d.Count})
	}
	ctx.JSON(http.StatusOK, response)
}

// Days returns the number of days statistics have been collected for
func (handler *statsHandler) Days(ctx *gin.Context) {
	days, err := handler.statsService.Days(ctx)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not count days")
		return
	}
	ctx.JSON(http.StatusOK, DaysResponse{Days: days})
}

// Summary handles the GET request aggregating statistics for a window
// @Summary Statistics summary
// @Tags Statistics
// @Produce json
// @Param from query string false "Window start, RFC3339 or YYYY-MM-DD"
// @Param to query string false "Window end, RFC3339 or YYYY-MM-DD"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /stats/get [get]
func (handler *statsHandler) Summary(ctx *gin.Context) {
	var from, to time.Time
	var err error
	if raw := ctx.Query("from"); raw != "" {
		if from, err = parseTime(raw); err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
	}
	if raw := ctx.Query("to"); raw != "" {
		if to, err = parseTime(raw); err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
	}

	summary, err := handler.statsService.Summary(ctx, from, to)
	if err != nil {
		abortWithError(ctx, err, http.StatusBadRequest, "could not summarize statistics")
		return
	}

	response := SummaryResponse{
		From:         summary.From,
		To:           summary.To,
		Users:        summary.Users,
		Resources:    summary.Resources,
		Published:    summary.Published,
		Actions:      make(map[string]int64, len(summary.ActionCounts)),
		Queries:      summary.Queries,
		AvgQueryTime: summary.AvgQueryTime,
		Statuses:     summary.StatusCounts,
	}
	for action, n := range summary.ActionCounts {
		response.Actions[action.Label()] = n
	}
	ctx.JSON(http.StatusOK, response)
}

// ResourceStats returns every statistics row of the resource given by the id query parameter
func (handler *statsHandler) ResourceStats(ctx *gin.Context) {
	resourceID := ctx.Query("id")
	if resourceID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "missing id"})
		return
	}

	rows, err := handler.statsService.ResourceStats(ctx, resourceID)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("could not load statistics of %s", resourceID))
		return
	}
	ctx.JSON(http.StatusOK, newLRStatResponses(rows))
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected RFC3339 or YYYY-MM-DD", raw)
	}
	return t, nil
}
