package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("rendered document is not valid JSON: %v", err)
	}

	routes := map[string]string{
		"/auth/login":                              "post",
		"/auth/refresh":                            "post",
		"/registrations":                           "get",
		"/character-detail/equipment":              "get",
		"/item-image/{itemId}":                     "get",
		"/web/login":                               "post",
		"/web/refresh":                             "post",
		"/web/my-page":                             "get",
		"/web/characters/{serverId}/{characterId}": "get",
	}
	for path, method := range routes {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Fatalf("missing %s %s", method, path)
		}
	}

	for _, name := range []string{"handler.sessionResponse", "domain.CharacterEquipment", "handler.errorResponse"} {
		if _, ok := doc.Definitions[name]; !ok {
			t.Fatalf("missing definition %s", name)
		}
	}
}
