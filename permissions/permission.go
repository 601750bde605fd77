package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission guards one route pattern. Skip makes it public; otherwise the
// caller's role must be listed in Roles, or Roles must be empty.
type Permission struct {
	Roles  []string `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func key(path, method string) string {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks up a chi route pattern such as /v1/rooms/{code}.
// Unknown routes get the zero Permission, which requires authentication.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.buildIndex()
	}

	return r.index[key(path, method)]
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		r.index[key(endpoint.Path, endpoint.Method)] = endpoint
	}
}

// Parse decodes a permission table and rejects duplicate routes.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData
	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.buildIndex()

	if len(permissions.index) != len(permissions.Endpoints) {
		return nil, fmt.Errorf("permissions: %d endpoints declared but only %d are unique",
			len(permissions.Endpoints), len(permissions.index))
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
