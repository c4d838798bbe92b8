package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/cm-academy/cm-academy-api/internal/models"
	"github.com/cm-academy/cm-academy-api/internal/repository"
	"github.com/cm-academy/cm-academy-api/internal/resource"
)

// MaxBodyBytes caps a create request body.
const MaxBodyBytes = 100 << 10

var errTrailingData = errors.New("unexpected data after JSON object")

type Handler struct {
	store       repository.DocumentStore
	collections []*resource.Collection
}

func NewHandler(store repository.DocumentStore, collections []*resource.Collection) *Handler {
	return &Handler{
		store:       store,
		collections: collections,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.root)
	r.GET("/health", h.health)

	for _, col := range h.collections {
		kind := col.Kind()
		r.POST("/add"+kind.Name, h.create(col))
		r.GET("/all"+kind.Plural, h.list(col))
		if kind.Deletable {
			r.DELETE("/delete"+kind.Name+"/:id", h.delete(col))
		}
	}
}

func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "CM Academy is on")
}

func (h *Handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) create(col *resource.Collection) gin.HandlerFunc {
	kind := col.Kind()

	return func(c *gin.Context) {
		attrs, err := bindRecord(c)
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			c.JSON(status, gin.H{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
			return
		}

		res := col.Create(c.Request.Context(), attrs)
		if res.Failed() {
			slog.Error("error inserting record", "kind", kind.Name, "outcome", res.Outcome.String(), "request_id", requestID(c), "error", res.Err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred",
				"error":   errorText(res.Err),
			})
			return
		}

		slog.Debug("record added", "kind", kind.Name, "id", res.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"message": kind.AddedMessage()})
	}
}

func (h *Handler) list(col *resource.Collection) gin.HandlerFunc {
	kind := col.Kind()

	return func(c *gin.Context) {
		res := col.ListAll(c.Request.Context())
		if res.Failed() {
			slog.Error("error fetching records", "kind", kind.Name, "outcome", res.Outcome.String(), "request_id", requestID(c), "error", res.Err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": kind.FetchErrorMessage(),
				"error":   errorText(res.Err),
			})
			return
		}

		c.JSON(http.StatusOK, res.Records)
	}
}

func (h *Handler) delete(col *resource.Collection) gin.HandlerFunc {
	kind := col.Kind()

	return func(c *gin.Context) {
		res := col.DeleteByID(c.Request.Context(), c.Param("id"))

		switch res.Outcome {
		case resource.OutcomeDeleted:
			c.JSON(http.StatusOK, gin.H{"message": kind.DeletedMessage()})
		case resource.OutcomeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": kind.NotFoundMessage()})
		case resource.OutcomeValidationFault:
			c.JSON(http.StatusBadRequest, gin.H{
				"message": kind.InvalidIDMessage(),
				"error":   errorText(res.Err),
			})
		default:
			slog.Error("error deleting record", "kind", kind.Name, "id", c.Param("id"), "outcome", res.Outcome.String(), "request_id", requestID(c), "error", res.Err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": kind.DeleteErrorMessage()})
		}
	}
}

// bindRecord decodes an application/json body holding exactly one JSON
// object of at most MaxBodyBytes. Any other content type, and an empty body,
// yield an empty record.
func bindRecord(c *gin.Context) (models.Record, error) {
	if c.Request.Body == nil || c.ContentType() != binding.MIMEJSON {
		return models.Record{}, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return models.Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var attrs models.Record
	if err := dec.Decode(&attrs); err != nil {
		return nil, err
	}
	var rest json.RawMessage
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return attrs, nil
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
