package mockoracle

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/tribute/pkg/logger"
)

// chatRequest mirrors the slice of the chat-completions request the
// stub needs: the text parts of the user message.
type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Handler answers chat-completions requests with synthetic replies.
type Handler struct {
	gen *Generator
	log logger.Logger
}

// NewHandler creates a handler around gen.
func NewHandler(gen *Generator) *Handler {
	return &Handler{
		gen: gen,
		log: logger.Named("mockoracle"),
	}
}

// Register attaches the chat-completions route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/chat/completions", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// The coin prompt names the coin column; anything else is treated
	// as the activity leaderboard.
	coins := false
	for _, msg := range req.Messages {
		for _, part := range msg.Content {
			if part.Type == "text" && strings.Contains(part.Text, "金幣") {
				coins = true
			}
		}
	}

	reply := h.gen.Reply(coins)
	h.log.Debug(r.Context(), "serving synthetic reply",
		logger.String("model", req.Model),
		logger.Bool("coins", coins),
		logger.Int("bytes", len(reply)),
	)

	resp := chatResponse{
		Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: reply}},
		},
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}
