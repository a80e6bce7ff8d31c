package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/domain"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
	"github.com/gin-gonic/gin"
)

// BoardUsecase はハンドラが利用するユースケースの最小インタフェース。
type BoardUsecase interface {
	CreateBoard(ctx context.Context, input usecases.CreateBoardInput) (usecases.BoardView, error)
	GetBoard(ctx context.Context, id string) (usecases.BoardView, error)
	ListBoards(ctx context.Context) ([]string, error)
	DeleteBoard(ctx context.Context, id string) error
	Place(ctx context.Context, id string, input usecases.PlaceInput) (usecases.PlaceOutput, error)
	Undo(ctx context.Context, id string) (usecases.BoardView, error)
	Redo(ctx context.Context, id string) (usecases.BoardView, error)
	Expand(ctx context.Context, id string, row, col int) (usecases.ExpandOutput, error)
	ChangeFill(ctx context.Context, id string, fill string) (usecases.BoardView, error)
	LongestSequence(ctx context.Context, id string) ([]usecases.Cell, error)
	Render(ctx context.Context, id string) (string, error)
	ListEvents(ctx context.Context, id string, limit int) ([]usecases.BoardEvent, error)
	ReplayBoard(ctx context.Context, id string) (usecases.BoardView, error)
}

// NewRouter は Gin の Engine を生成しルーティングを設定する。
func NewRouter(boardUC BoardUsecase) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/boards", createBoardHandler(boardUC))
		v1.GET("/boards", listBoardsHandler(boardUC))
		v1.GET("/boards/:id", getBoardHandler(boardUC))
		v1.DELETE("/boards/:id", deleteBoardHandler(boardUC))
		v1.POST("/boards/:id/placements", placeHandler(boardUC))
		v1.POST("/boards/:id/undo", boardStepHandler(boardUC.Undo))
		v1.POST("/boards/:id/redo", boardStepHandler(boardUC.Redo))
		v1.POST("/boards/:id/expand", expandHandler(boardUC))
		v1.PUT("/boards/:id/fill", fillHandler(boardUC))
		v1.GET("/boards/:id/longest", longestHandler(boardUC))
		v1.GET("/boards/:id/render", renderHandler(boardUC))
		v1.GET("/boards/:id/events", listEventsHandler(boardUC))
		v1.GET("/boards/:id/replay", boardStepHandler(boardUC.ReplayBoard))
	}

	return r
}

func createBoardHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createBoardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "リクエストボディの形式が不正です", err)
			return
		}

		input := usecases.CreateBoardInput{
			Fill: *req.Fill,
			Grid: req.Grid,
		}
		if req.Bounds != nil {
			input.Bounds = &usecases.Bounds{
				MinRow: *req.Bounds.MinRow,
				MaxRow: *req.Bounds.MaxRow,
				MinCol: *req.Bounds.MinCol,
				MaxCol: *req.Bounds.MaxCol,
			}
		}

		view, err := boardUC.CreateBoard(c.Request.Context(), input)
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusCreated, newBoardResponse(view))
	}
}

func listBoardsHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := boardUC.ListBoards(c.Request.Context())
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"boards": ids})
	}
}

func getBoardHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return boardStepHandler(boardUC.GetBoard)
}

// boardStepHandler は ID だけを受け取り盤面を返すユースケースをハンドラにする。
func boardStepHandler(fn func(ctx context.Context, id string) (usecases.BoardView, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := fn(c.Request.Context(), c.Param("id"))
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, newBoardResponse(view))
	}
}

func deleteBoardHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := boardUC.DeleteBoard(c.Request.Context(), c.Param("id")); err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func placeHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "リクエストボディの形式が不正です", err)
			return
		}

		input := usecases.PlaceInput{Row: *req.Row, Col: *req.Col, Element: req.Element}
		output, err := boardUC.Place(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, placeResponse{
			Applied: output.Applied,
			Board:   newBoardResponse(output.Board),
		})
	}
}

func expandHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req coordinateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "リクエストボディの形式が不正です", err)
			return
		}

		output, err := boardUC.Expand(c.Request.Context(), c.Param("id"), *req.Row, *req.Col)
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, expandResponse{
			Created: output.Created,
			Board:   newBoardResponse(output.Board),
		})
	}
}

func fillHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "リクエストボディの形式が不正です", err)
			return
		}

		view, err := boardUC.ChangeFill(c.Request.Context(), c.Param("id"), *req.Fill)
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, newBoardResponse(view))
	}
}

func longestHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		cells, err := boardUC.LongestSequence(c.Request.Context(), c.Param("id"))
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"length": len(cells),
			"cells":  newCellResponses(cells),
		})
	}
}

func renderHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, err := boardUC.Render(c.Request.Context(), c.Param("id"))
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		c.String(http.StatusOK, text)
	}
}

func listEventsHandler(boardUC BoardUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
			value, err := strconv.Atoi(rawLimit)
			if err != nil {
				writeError(c, http.StatusBadRequest, "limit は数値で指定してください", err)
				return
			}
			limit = value
		}

		events, err := boardUC.ListEvents(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			handleUsecaseError(c, err)
			return
		}

		response := make([]eventResponse, len(events))
		for i, event := range events {
			response[i] = newEventResponse(event)
		}

		c.JSON(http.StatusOK, response)
	}
}

func handleUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecases.ErrValidationFailed):
		writeError(c, http.StatusBadRequest, "入力値が不正です", err)
	case errors.Is(err, domain.ErrNullElement):
		writeError(c, http.StatusBadRequest, "要素が指定されていません", err)
	case errors.Is(err, domain.ErrInvalidExtent):
		writeError(c, http.StatusBadRequest, "盤面の範囲が不正です", err)
	case errors.Is(err, usecases.ErrBoardNotFound):
		writeError(c, http.StatusNotFound, "指定された盤面が見つかりません", err)
	case errors.Is(err, domain.ErrAlreadySet):
		writeError(c, http.StatusConflict, "指定されたセルには既に要素があります", err)
	case errors.Is(err, domain.ErrEmptyHistory):
		writeError(c, http.StatusConflict, "履歴がありません", err)
	case errors.Is(err, usecases.ErrCorruptJournal):
		writeError(c, http.StatusUnprocessableEntity, "ジャーナルから盤面を復元できません", err)
	default:
		writeError(c, http.StatusInternalServerError, "内部エラーが発生しました", err)
	}
}

func writeError(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
