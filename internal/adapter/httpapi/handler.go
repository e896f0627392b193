// Package httpapi exposes the study engine over a small REST surface.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/repository"
	"github.com/eslsoft/repaso/internal/usecase"
)

// Handler wires the usecases into echo routes.
type Handler struct {
	study usecase.StudyUsecase
	sync  usecase.SyncUsecase
}

func NewHandler(study usecase.StudyUsecase, sync usecase.SyncUsecase) *Handler {
	return &Handler{study: study, sync: sync}
}

// Register mounts all routes under /api/v1.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/users/:userID/sync", h.syncContent)
	g.GET("/users/:userID/question", h.nextQuestion)
	g.POST("/users/:userID/answers", h.submitAnswer)
	g.GET("/users/:userID/stats", h.getStats)
	g.GET("/items", h.listItems)
}

type questionResponse struct {
	ItemID      string `json:"item_id"`
	Type        string `json:"type"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

type answerRequest struct {
	ItemID string `json:"item_id"`
	Answer string `json:"answer"`
}

type answerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type statsResponse struct {
	TotalItems    int64 `json:"total_items"`
	ReviewedItems int64 `json:"reviewed_items"`
	CorrectRate   int32 `json:"correct_rate"`
	MaxStreak     int32 `json:"max_streak"`
	DueForReview  int64 `json:"due_for_review"`
}

type syncResponse struct {
	SyncedCount int      `json:"synced_count"`
	Errors      []string `json:"errors"`
}

type itemResponse struct {
	ID         string   `json:"id"`
	PageID     string   `json:"page_id"`
	PageTitle  string   `json:"page_title"`
	Content    string   `json:"content"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

type listItemsResponse struct {
	Items []itemResponse `json:"items"`
	Total int64          `json:"total"`
}

func (h *Handler) syncContent(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	result, err := h.sync.Sync(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	resp := syncResponse{SyncedCount: result.SyncedCount, Errors: result.Errors}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) nextQuestion(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	q, err := h.study.NextQuestion(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	if q == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, questionResponse{
		ItemID:      q.ItemID,
		Type:        string(q.Type),
		Question:    q.Question,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	})
}

func (h *Handler) submitAnswer(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.ItemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "item_id is required")
	}
	result, err := h.study.SubmitAnswer(c.Request().Context(), userID, req.ItemID, req.Answer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, answerResponse{
		Correct:       result.Correct,
		CorrectAnswer: result.CorrectAnswer,
		Explanation:   result.Explanation,
	})
}

func (h *Handler) getStats(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	stats, err := h.study.GetStats(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalItems:    stats.TotalItems,
		ReviewedItems: stats.ReviewedItems,
		CorrectRate:   stats.CorrectRate,
		MaxStreak:     stats.MaxStreak,
		DueForReview:  stats.DueForReview,
	})
}

func (h *Handler) listItems(c echo.Context) error {
	query := &repository.ListItemsQuery{
		FilterOrder: repository.FilterOrder{Filter: c.QueryParam("filter")},
		Pagination: repository.Pagination{
			PageNo:   int32(queryInt(c, "page")),
			PageSize: int32(queryInt(c, "page_size")),
		},
	}
	items, total, err := h.study.ListItems(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp := listItemsResponse{Items: make([]itemResponse, 0, len(items)), Total: total}
	for _, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		resp.Items = append(resp.Items, itemResponse{
			ID:         item.ID,
			PageID:     item.SourcePageID,
			PageTitle:  item.SourcePageTitle,
			Content:    item.Content,
			Type:       string(item.Type),
			Difficulty: string(item.Difficulty),
			Tags:       tags,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func pathUserID(c echo.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return userID, nil
}

func queryInt(c echo.Context, name string) int {
	v, _ := strconv.Atoi(c.QueryParam(name))
	return v
}

func httpError(err error) error {
	switch {
	case errors.Is(err, entity.ErrItemNotFound), errors.Is(err, entity.ErrReviewStateNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrReviewConflict), errors.Is(err, entity.ErrSyncInProgress):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInvalidUserID), errors.Is(err, entity.ErrInvalidStudyItem):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
