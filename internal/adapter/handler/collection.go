package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/errors"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
)

// collectionKey stores the served collection name on the echo context
const collectionKey = "collection"

// Collection serves the generic document collections (projects, tasks)
type Collection struct {
	store  repositories.DocumentStore
	logger *zap.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(store repositories.DocumentStore, logger *zap.Logger) *Collection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection{store: store, logger: logger}
}

// List returns a handler for GET /api/<collection>
// @Summary      List documents
// @Description  Returns the full collection in insertion order. Unreadable storage yields an empty list.
// @Tags         Collections
// @Produce      json
// @Success      200  {array}   object  "Stored documents"
// @Router       /projects [get]
// @Router       /tasks [get]
func (h *Collection) List(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(collectionKey, collection)

		docs, err := h.store.List(c.Request().Context(), collection)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return c.JSON(http.StatusOK, docs)
	}
}

// Append returns a handler for POST /api/<collection>
// @Summary      Append a document
// @Description  Stores any JSON object and assigns it a server-side id. An empty body stores an empty document.
// @Tags         Collections
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "Document fields"
// @Success      201      {object}  object  "Stored document"
// @Failure      400      {object}  common.ErrorResponse  "Body is not a JSON object"
// @Failure      500      {object}  common.ErrorResponse  "Write failed"
// @Router       /projects [post]
// @Router       /tasks [post]
func (h *Collection) Append(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(collectionKey, collection)

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
		}
		body = bytes.TrimSpace(body)
		if len(body) == 0 {
			body = []byte("{}")
		}
		if !json.Valid(body) {
			return HandleError(h.logger, c, errors.ErrInvalidPayload(echo.ErrBadRequest))
		}

		doc, err := h.store.Append(c.Request().Context(), collection, json.RawMessage(body))
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return c.JSON(http.StatusCreated, doc)
	}
}
