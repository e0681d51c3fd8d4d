package transform

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	DefaultResourceModel = "Collaborateurs"
	DefaultEntityName    = "Collaborateurs-Localisation"
)

// Mapping names the VP Desk resource model and the attribute that stores the
// position. Both depend on how the VP Desk instance was configured.
type Mapping struct {
	ResourceModel string `json:"resourceModel"`
	EntityName    string `json:"entityName"`
}

func DefaultMapping() Mapping {
	return Mapping{
		ResourceModel: DefaultResourceModel,
		EntityName:    DefaultEntityName,
	}
}

func (m Mapping) Validate() error {
	if strings.TrimSpace(m.ResourceModel) == "" {
		return errors.New("resourceModel is required")
	}
	if strings.TrimSpace(m.EntityName) == "" {
		return errors.New("entityName is required")
	}
	return nil
}

// LoadMapping reads a json or yaml mapping file. Fields missing from the file
// keep the values of base.
func LoadMapping(path string, base Mapping) (Mapping, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "failed to read mapping file %s", path)
	}

	payload := base
	if strings.HasSuffix(path, ".json") {
		if err := json.NewDecoder(bytes.NewBuffer(dat)).Decode(&payload); err != nil {
			return base, errors.Wrapf(err, "failed to parse mapping file %s", path)
		}
	} else if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(dat, &payload); err != nil {
			return base, errors.Wrapf(err, "failed to parse mapping file %s", path)
		}
	} else {
		return base, errors.Errorf("mapping file %s has to be json or yaml", path)
	}

	if err := payload.Validate(); err != nil {
		return base, errors.Wrapf(err, "invalid mapping file %s", path)
	}
	return payload, nil
}
