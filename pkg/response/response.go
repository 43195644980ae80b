package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MsgInternal is the notice shown for store and other unexpected failures.
const MsgInternal = "something went wrong, please try again"

// Body is the standard API response envelope.
// Message is a one-shot notice for the user; Redirect tells the client where to go next.
type Body struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created sends a 201 JSON response with data and a notice.
func Created(c *gin.Context, data interface{}, message, redirect string) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data, Message: message, Redirect: redirect})
}

// Notice sends a successful response that carries a notice and a redirect target.
func Notice(c *gin.Context, data interface{}, message, redirect string) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data, Message: message, Redirect: redirect})
}

// Redirect sends a failure with a notice and the location the client should go back to.
func Redirect(c *gin.Context, status int, message, redirect string) {
	c.JSON(status, Body{Success: false, Error: message, Message: message, Redirect: redirect})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Error: err})
}

// Unauthorized sends 401 and points the client at the login page.
func Unauthorized(c *gin.Context, err string) {
	Redirect(c, http.StatusUnauthorized, err, "/login")
}

// Forbidden sends 403 and points the client at the homepage.
func Forbidden(c *gin.Context, err string) {
	Redirect(c, http.StatusForbidden, err, "/")
}

// NotFound sends 404 with a notice and redirect target.
func NotFound(c *gin.Context, err, redirect string) {
	Redirect(c, http.StatusNotFound, err, redirect)
}

// Conflict sends 409 with a notice and redirect target.
func Conflict(c *gin.Context, err, redirect string) {
	Redirect(c, http.StatusConflict, err, redirect)
}

// ServiceUnavailable sends 503.
func ServiceUnavailable(c *gin.Context, err string) {
	c.JSON(http.StatusServiceUnavailable, Body{Success: false, Error: err})
}

// Internal sends 500.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Error: err})
}
