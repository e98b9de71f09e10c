package client

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/seedance-go/generation"
)

const modelsPath = "/api/v3/models"

// Model is one entry of the model listing. Capabilities is derived
// locally from the identifier.
type Model struct {
	ID           string                  `json:"id"`
	Object       string                  `json:"object,omitempty"`
	Created      time.Time               `json:"created"`
	OwnedBy      string                  `json:"owned_by,omitempty"`
	Capabilities generation.Capabilities `json:"capabilities"`
}

type modelList struct {
	Object string `json:"object"`
	Data   []struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Created int64  `json:"created"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}

// ListModels returns the models available to the configured key.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var list modelList
	if err := c.do(ctx, http.MethodGet, modelsPath, nil, &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		return nil, &UnknownError{StatusCode: http.StatusOK, Message: "response is missing the model list"}
	}

	models := make([]Model, 0, len(list.Data))
	for _, m := range list.Data {
		if m.ID == "" {
			return nil, &UnknownError{StatusCode: http.StatusOK, Message: "model entry is missing its id"}
		}

		model := Model{
			ID:           m.ID,
			Object:       m.Object,
			OwnedBy:      m.OwnedBy,
			Capabilities: generation.CapabilitiesOf(m.ID),
		}
		if m.Created > 0 {
			model.Created = time.Unix(m.Created, 0).UTC()
		}
		models = append(models, model)
	}

	c.loggerFor(ctx).Debug().Int("models", len(models)).Msg("listed models")
	return models, nil
}
