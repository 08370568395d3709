package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/errors"
	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/scrum-assistant/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response using provided logger
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := toAppError(c, err)

	if logger != nil {
		logFn := logger.Warn
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logFn = logger.Error
		}
		logFn("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps domain and use case errors onto client-facing AppErrors
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var transition *entities.TransitionError
	switch {
	case stdErrors.As(err, &transition):
		return errors.ErrSessionInvalidTransition(err)
	case stdErrors.Is(err, entities.ErrInvalidState):
		return errors.ErrSessionInvalidState(err)
	case stdErrors.Is(err, entities.ErrInvalidEvent):
		return errors.ErrSessionInvalidEvent(err)
	case stdErrors.Is(err, entities.ErrInvalidMeetingType),
		stdErrors.Is(err, entities.ErrInvalidParticipant):
		return errors.ErrValidationFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrSessionNotFound):
		return errors.ErrSessionNotFound(c.Param("id"))
	case stdErrors.Is(err, usecaseErrors.ErrSummaryNotFound):
		return errors.ErrSummaryNotFound(c.Param("session_id"))
	case stdErrors.Is(err, repositories.ErrInvalidCollection):
		return errors.ErrStorageInvalidCollection(collectionOf(c))
	case stdErrors.Is(err, repositories.ErrInvalidRecord):
		return errors.ErrStorageInvalidRecord(err)
	case stdErrors.Is(err, repositories.ErrWriteFailed):
		return errors.ErrStorageWriteFailed(collectionOf(c), err)
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		return errors.ErrInvalidPayload(err)
	}

	return errors.ErrInternal(err)
}

// collectionOf returns the collection a route serves, if any
func collectionOf(c echo.Context) string {
	if name, ok := c.Get(collectionKey).(string); ok {
		return name
	}
	return ""
}
