package endpoint

import (
	"fmt"

	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
)

// chatClient is the process-wide assistant client, set during startup.
var chatClient *util.GeminiClient

// SetChatClient wires the Gemini client into the chat handler.
func SetChatClient(client *util.GeminiClient) {
	chatClient = client
}

type chatRequest struct {
	Message string `json:"message" binding:"required" example:"I have had a headache for two days"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat godoc
// @Summary      Ask the AI health assistant
// @Description  Single pass-through call to the generative-language API; upstream failures surface directly
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body chatRequest true "User message"
// @Success      200 {object} util.APIResponse{data=chatResponse} "Assistant reply"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Assistant unavailable"
// @Router       /api/chat [post]
func Chat(c *gin.Context) {
	var req chatRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if chatClient == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Assistant not available", Err: fmt.Errorf("chat client is not configured")})
		return
	}

	reply, err := chatClient.GenerateReply(c.Request.Context(), req.Message)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Assistant request failed", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Assistant reply",
		Data: chatResponse{Reply: reply},
	})
}
