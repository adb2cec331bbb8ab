package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

// Envelope is the uniform response body: a numeric status, an optional
// message, and operation specific payload keys merged at the top level.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK sends a 200 envelope with the payload's fields merged next to status.
// payload must marshal to a JSON object (or be nil).
func OK(c *gin.Context, payload interface{}) {
	write(c, http.StatusOK, Envelope{Status: http.StatusOK}, payload)
}

// Error sends an error envelope converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(appErr)
	write(c, appErr.Status, Envelope{Status: appErr.Status, Message: appErr.Message, Code: appErr.Code}, nil)
}

// File streams an attachment.
func File(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, contentType, body)
}

func write(c *gin.Context, status int, env Envelope, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")

	body, err := merge(env, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Envelope{Status: http.StatusInternalServerError, Message: "failed to encode response"})
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func merge(env Envelope, payload interface{}) ([]byte, error) {
	head, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return head, nil
	}

	fields := map[string]json.RawMessage{}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(head, &fields); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
