package actions

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/backend"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/executor"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// entity is a backend object kept as a generic map so updates send back every field.
type entity map[string]any

func (e entity) id() string {
	switch v := e["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (e entity) with(key string, val any) entity {
	out := make(entity, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[key] = val
	return out
}

func (h *handlers) call(ctx context.Context, method, endpoint string, payload any, out any) error {
	res, err := h.backend.PerformAction(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}
	if out != nil {
		if err := res.Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, endpoint, err)
		}
	}
	return nil
}

// get fetches one entity. A 404 becomes a PublicError carrying notFound.
func (h *handlers) get(ctx context.Context, endpoint, notFound string) (entity, error) {
	var e entity
	if err := h.call(ctx, http.MethodGet, endpoint, nil, &e); err != nil {
		if backend.IsNotFound(err) {
			return nil, executor.WrapPublic(notFound, err)
		}
		return nil, err
	}
	if e == nil {
		return nil, executor.Public(notFound)
	}
	return e, nil
}

func pathID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

func amount(data model.FormData, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(data.Get(name)), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return v, nil
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
