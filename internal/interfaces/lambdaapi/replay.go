package lambdaapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

// ReplayResponse は GET /boards/{boardId}/replay のレスポンスボディ。
type ReplayResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    *usecases.BoardView `json:"data,omitempty"`
}

// ReplayHandler はジャーナルから盤面を復元して返す API Gateway プロキシハンドラ。
type ReplayHandler struct {
	repo usecases.EventRepository
}

// NewReplayHandler は ReplayHandler を生成する。
func NewReplayHandler(repo usecases.EventRepository) *ReplayHandler {
	return &ReplayHandler{repo: repo}
}

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
	"Content-Type":                 "application/json",
}

// Handle は lambda.Start に渡すエントリポイント。
func (h *ReplayHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// CORS プリフライト
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: corsHeaders}, nil
	}

	if request.HTTPMethod != http.MethodGet {
		return respond(http.StatusMethodNotAllowed, ReplayResponse{Message: "Method not allowed"}), nil
	}

	boardID := request.PathParameters["boardId"]
	if boardID == "" {
		return respond(http.StatusBadRequest, ReplayResponse{Message: "boardId is required"}), nil
	}

	view, err := usecases.ReplayFromRepository(ctx, h.repo, boardID)
	if err != nil {
		log.Printf("replay %s: %v", boardID, err)

		switch {
		case errors.Is(err, usecases.ErrBoardNotFound):
			return respond(http.StatusNotFound, ReplayResponse{Message: "Board not found"}), nil
		case errors.Is(err, usecases.ErrCorruptJournal):
			return respond(http.StatusUnprocessableEntity, ReplayResponse{Message: "Journal cannot be replayed"}), nil
		case errors.Is(err, usecases.ErrValidationFailed):
			return respond(http.StatusBadRequest, ReplayResponse{Message: "Invalid boardId"}), nil
		default:
			return respond(http.StatusInternalServerError, ReplayResponse{Message: "Failed to replay board"}), nil
		}
	}

	return respond(http.StatusOK, ReplayResponse{Success: true, Data: &view}), nil
}

func respond(status int, body ReplayResponse) events.APIGatewayProxyResponse {
	raw, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders,
		Body:       string(raw),
	}
}
