package assets

import (
	_ "embed"
	"fmt"

	"github.com/soocke/vision-panel-go/domain/inference"
)

// DefaultModelsJSON is the built-in model catalog used when the inference
// service cannot be reached.
//
//go:embed default_models.json
var DefaultModelsJSON []byte

// DefaultModels decodes the embedded catalog.
func DefaultModels() ([]inference.ModelDescriptor, error) {
	if len(DefaultModelsJSON) == 0 {
		return nil, fmt.Errorf("embedded default_models.json is empty")
	}
	models, err := inference.DecodeModels(DefaultModelsJSON)
	if err != nil {
		return nil, err
	}
	return models, nil
}
